package searxng

// searchResponse is the JSON body of GET /search?format=json.
type searchResponse struct {
	Results []rawItem `json:"results"`
}

// rawItem is one heterogeneous upstream result. Text verticals fill url and
// content; the image vertical fills img_src.
type rawItem struct {
	URL     *string `json:"url"`
	Content *string `json:"content"`
	Title   *string `json:"title"`
	ImgSrc  *string `json:"img_src"`
}
