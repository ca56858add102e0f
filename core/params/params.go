package params

// QueryParams carries common list-endpoint paging parameters.
type QueryParams struct {
	PageNumber int `query:"page"`
	PageSize   int `query:"page_size"`
}

// Normalize clamps paging values to sane defaults.
func (p *QueryParams) Normalize() {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}
