package handler

import (
	"net/http"
	"strconv"
	"strings"

	"blog-web-server/internal/model"
	"blog-web-server/internal/model/requestresponse"
	"blog-web-server/internal/ports"
	"blog-web-server/internal/security"

	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService}
}

// CreatePost godoc
// @Summary Создание поста
// @Description Создаёт пост от имени текущего пользователя. Slug должен быть уникальным.
// @Tags Posts
// @Accept json
// @Produce json
// @Param body body requestresponse.CreatePostRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} model.Post
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 409 {object} requestresponse.ErrorResponse "Slug уже занят"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/posts [post]
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	var req requestresponse.CreatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Slug == "" || req.Title == "" || req.Content == "" {
		sendErrorResponse(w, http.StatusBadRequest, "slug, title и content обязательны")
		return
	}

	post, err := h.PostService.Create(r.Context(), claims.UserID, model.CreatePostInput{
		Slug:       req.Slug,
		Title:      req.Title,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// ListPosts godoc
// @Summary Список постов
// @Description Возвращает страницу постов с поиском, фильтрами по автору и тегам
// @Tags Posts
// @Produce json
// @Param page query int false "Номер страницы" default(1) minimum(1)
// @Param limit query int false "Размер страницы" default(20) minimum(1) maximum(100)
// @Param q query string false "Поиск по заголовку, тексту, slug, тегам и автору"
// @Param authorId query int false "Фильтр по автору"
// @Param tags query string false "Фильтр по тегам, через запятую"
// @Param orderBy query string false "Поле сортировки" Enums(createdAt, updatedAt, title)
// @Param order query string false "Направление сортировки" Enums(asc, desc)
// @Success 200 {object} model.PostPage
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/posts [get]
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := model.PostListParams{
		Page:    parseIntQuery(query.Get("page"), 1),
		Limit:   parseIntQuery(query.Get("limit"), 20),
		OrderBy: mapOrderColumn(query.Get("orderBy")),
		Order:   query.Get("order"),
		Query:   query.Get("q"),
	}

	if rawAuthor := query.Get("authorId"); rawAuthor != "" {
		authorID, err := strconv.ParseInt(rawAuthor, 10, 64)
		if err != nil || authorID <= 0 {
			sendErrorResponse(w, http.StatusBadRequest, "некорректный authorId")
			return
		}
		params.AuthorID = authorID
	}

	if rawTags := query.Get("tags"); rawTags != "" {
		for _, tag := range strings.Split(rawTags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				params.Tags = append(params.Tags, tag)
			}
		}
	}

	page, err := h.PostService.List(r.Context(), params)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// FeedPosts godoc
// @Summary Лента постов
// @Description Возвращает срез ленты по offset/limit, новые посты первыми
// @Tags Posts
// @Produce json
// @Param offset query int false "Смещение" default(0) minimum(0)
// @Param limit query int false "Количество постов" default(20) minimum(1) maximum(100)
// @Success 200 {object} model.PostFeed
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/posts/feed [get]
func (h *PostHandler) FeedPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	offset := 0
	if raw := query.Get("offset"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			offset = value
		}
	}
	limit := parseIntQuery(query.Get("limit"), 20)

	feed, err := h.PostService.Feed(r.Context(), offset, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feed)
}

// GetPost godoc
// @Summary Получение поста по slug
// @Description Возвращает пост вместе с автором. Ответ кэшируется.
// @Tags Posts
// @Produce json
// @Param slug path string true "Slug поста"
// @Success 200 {object} model.Post
// @Failure 404 {object} requestresponse.ErrorResponse "Пост не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/posts/{slug} [get]
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		sendErrorResponse(w, http.StatusBadRequest, "slug не указан")
		return
	}

	post, err := h.PostService.GetBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// UpdatePost godoc
// @Summary Обновление поста
// @Description Частично обновляет пост. Доступен только автору.
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path int true "ID поста"
// @Param body body requestresponse.UpdatePostRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} model.Post
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Пост принадлежит другому пользователю"
// @Failure 404 {object} requestresponse.ErrorResponse "Пост не найден"
// @Failure 409 {object} requestresponse.ErrorResponse "Slug уже занят"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/posts/{id} [patch]
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	id, ok := parseIDParam(w, r)
	if ok == false {
		return
	}

	var req requestresponse.UpdatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	post, err := h.PostService.Update(r.Context(), id, claims.UserID, model.UpdatePostInput{
		Slug:       req.Slug,
		Title:      req.Title,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// DeletePost godoc
// @Summary Удаление поста
// @Description Удаляет пост и его обложку из хранилища. Доступен только автору.
// @Tags Posts
// @Produce json
// @Param id path int true "ID поста"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} model.Post "Удалённый пост"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Пост принадлежит другому пользователю"
// @Failure 404 {object} requestresponse.ErrorResponse "Пост не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/posts/{id} [delete]
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	id, ok := parseIDParam(w, r)
	if ok == false {
		return
	}

	post, err := h.PostService.Delete(r.Context(), id, claims.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}
