package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// PageParams carries the offset style pagination used by list endpoints.
// Bounds are checked by the services so the error text stays consistent.
type PageParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}
