package requestresponse

// CreatePostRequest : тело запроса на создание поста
type CreatePostRequest struct {
	Slug       string   `json:"slug" example:"my-first-post"`
	Title      string   `json:"title" example:"Мой первый пост"`
	Content    string   `json:"content" example:"Текст поста"`
	CoverImage *string  `json:"coverImage,omitempty"`
	Tags       []string `json:"tags,omitempty" example:"go,backend"`
}

// UpdatePostRequest : частичное обновление поста,
// отсутствующие поля не меняются
type UpdatePostRequest struct {
	Slug       *string  `json:"slug,omitempty"`
	Title      *string  `json:"title,omitempty"`
	Content    *string  `json:"content,omitempty"`
	CoverImage *string  `json:"coverImage,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}
