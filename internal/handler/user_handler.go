package handler

import (
	"net/http"
	"strconv"

	"blog-web-server/internal/model"
	"blog-web-server/internal/model/requestresponse"
	"blog-web-server/internal/ports"
	"blog-web-server/internal/security"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// CreateUser godoc
// @Summary Создание нового пользователя
// @Description Создаёт пользователя с логином и паролем. В отличие от регистрации не выдаёт токены.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateUserRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} model.PublicUser
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		sendErrorResponse(w, http.StatusBadRequest, "username, email и password обязательны")
		return
	}

	user, err := h.UserService.Create(r.Context(), model.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Nickname: req.Nickname,
		Image:    req.Image,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// GetUser godoc
// @Summary Получение информации о пользователе
// @Description Возвращает публичные данные пользователя
// @Tags Users
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} model.PublicUser
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if ok == false {
		return
	}

	user, err := h.UserService.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Обновление данных пользователя
// @Description Частично обновляет профиль. Доступен только самому пользователю.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param body body requestresponse.UpdateUserRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} model.PublicUser
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users/{id} [patch]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if ok == false {
		return
	}
	if restrictToOwner(w, r, id) == false {
		return
	}

	var req requestresponse.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	user, err := h.UserService.Update(r.Context(), id, model.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Nickname: req.Nickname,
		Image:    req.Image,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Удаление пользователя
// @Description Удаляет пользователя вместе с его постами. Доступен только владельцу.
// @Tags Users
// @Produce json
// @Param id path int true "ID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Пользователь успешно удалён"
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if ok == false {
		return
	}
	if restrictToOwner(w, r, id) == false {
		return
	}

	if err := h.UserService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUsers godoc
// @Summary Получение списка пользователей
// @Description Возвращает страницу пользователей с поиском по логину, email и никнейму
// @Tags Users
// @Produce json
// @Param page query int false "Номер страницы" default(1) minimum(1)
// @Param limit query int false "Размер страницы" default(20) minimum(1) maximum(100)
// @Param search query string false "Подстрока для поиска"
// @Param orderBy query string false "Поле сортировки" Enums(createdAt, username)
// @Param order query string false "Направление сортировки" Enums(asc, desc)
// @Success 200 {object} requestresponse.UserListResponse
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := model.UserListParams{
		Page:    parseIntQuery(query.Get("page"), 1),
		Limit:   parseIntQuery(query.Get("limit"), 20),
		Search:  query.Get("search"),
		OrderBy: mapOrderColumn(query.Get("orderBy")),
		Order:   query.Get("order"),
	}

	users, total, err := h.UserService.List(r.Context(), params)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.UserListResponse{
		Items: users,
		Meta: model.PageMeta{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: totalPages(total, params.Limit),
		},
	})
}

// GetUserPosts godoc
// @Summary Посты пользователя
// @Description Возвращает страницу постов указанного автора
// @Tags Users
// @Produce json
// @Param id path int true "ID пользователя"
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(20)
// @Success 200 {array} model.Post
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/{id}/posts [get]
func (h *UserHandler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if ok == false {
		return
	}

	query := r.URL.Query()
	params := model.PostListParams{
		Page:    parseIntQuery(query.Get("page"), 1),
		Limit:   parseIntQuery(query.Get("limit"), 20),
		OrderBy: mapOrderColumn(query.Get("orderBy")),
		Order:   query.Get("order"),
	}

	posts, err := h.UserService.Posts(r.Context(), id, params)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// parseIDParam читает числовой параметр id из URL
func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный id")
		return 0, false
	}
	return id, true
}

func parseIntQuery(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// mapOrderColumn переводит имя поля из запроса в имя колонки
func mapOrderColumn(orderBy string) string {
	switch orderBy {
	case "createdAt":
		return "created_at"
	case "updatedAt":
		return "updated_at"
	default:
		return orderBy
	}
}

func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pages
}

// restrictToOwner проверяет, что запрос выполняет владелец ресурса
func restrictToOwner(w http.ResponseWriter, r *http.Request, targetID int64) bool {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return false
	}

	if claims.UserID != targetID {
		sendErrorResponse(w, http.StatusForbidden, "доступ запрещён")
		return false
	}

	return true
}
