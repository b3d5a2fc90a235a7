package segment

type CreateSegmentRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Rules       []Rule `json:"rules" binding:"dive"`
}

type UpdateSegmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Rules       []Rule  `json:"rules" binding:"omitempty,dive"`
}

type ListFilters struct {
	Search   string `form:"search"` // matched against name and description
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ListResponse struct {
	Data       []Segment `json:"data"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// Preview is the evaluated membership of a rule set at a point in time.
type Preview struct {
	SegmentID   string   `json:"segment_id,omitempty"`
	Count       int64    `json:"count"`
	CustomerIDs []string `json:"customer_ids"`
}
