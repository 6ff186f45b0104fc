package handler

import (
	"net/http"
	"strings"

	"blog-web-server/internal/model"
	"blog-web-server/internal/model/requestresponse"
	"blog-web-server/internal/ports"
	"blog-web-server/internal/security"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService) *AuthenticationHandler {
	return &AuthenticationHandler{authenticationService}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт пользователя и сразу выдаёт пару токенов
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} model.AuthResult "Пользователь создан"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 409 {object} requestresponse.ErrorResponse "Логин или email уже заняты"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		sendErrorResponse(w, http.StatusBadRequest, "username, email и password обязательны")
		return
	}

	input := model.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}
	if req.FullName != "" {
		input.Nickname = &req.FullName
	}

	result, err := h.AuthenticationService.Register(ctx, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Получение пары токенов по логину (username или email) и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса" example({"identifier": "user1", "password": "StrongPass123!"})
// @Success 200 {object} model.AuthResult "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный логин или пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Identifier == "" || req.Password == "" {
		sendErrorResponse(w, http.StatusBadRequest, "identifier и password обязательны")
		return
	}

	user, err := h.AuthenticationService.ValidateCredentials(ctx, req.Identifier, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	result, err := h.AuthenticationService.Login(ctx, user.ID, user.Username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetProfile godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает пользователя, который авторизован в системе
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} model.PublicUser
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/auth/profile [get]
func (h *AuthenticationHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	user, err := h.AuthenticationService.GetProfile(ctx, claims.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// RefreshToken godoc
// @Summary Обновление access токена
// @Description Выдаёт новый access токен по действующему refresh токену.
// @Description Refresh токен передаётся в теле, cookie refresh_token или заголовке X-Refresh-Token;
// @Description заголовок Authorization с истёкшим access токеном опционален и служит дополнительной проверкой владельца.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshRequest false "Тело запроса"
// @Param Authorization header string false "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} model.AuthTokens "Новый access токен и прежний refresh токен"
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный или отозванный refresh токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	refreshToken := extractRefreshToken(r)
	if refreshToken == "" {
		sendErrorResponse(w, http.StatusUnauthorized, "refresh токен не передан")
		return
	}

	var accessToken string
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		accessToken = strings.TrimPrefix(authHeader, "Bearer ")
	}

	tokens, err := h.AuthenticationService.Refresh(ctx, refreshToken, accessToken)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

// extractRefreshToken ищет refresh токен в теле запроса, cookie и заголовке,
// в этом порядке
func extractRefreshToken(r *http.Request) string {
	var req requestresponse.RefreshRequest
	if err := decodeBody(r, &req); err == nil {
		if req.RefreshToken != "" {
			return req.RefreshToken
		}
		if req.Token != "" {
			return req.Token
		}
	}

	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return r.Header.Get("X-Refresh-Token")
}

// Logout godoc
// @Summary Завершение авторизованной сессии
// @Description Инвалидирует refresh токен текущего пользователя.
// @Description Субъект определяется по Bearer токену, а при его отсутствии — по refresh токену
// @Description из тела, cookie refresh_token или заголовка X-Refresh-Token, поэтому выход
// @Description работает и после истечения access токена.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshRequest false "Тело запроса"
// @Param Authorization header string false "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.LogoutResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if claims, err := security.GetClaimsFromContext(ctx); err == nil {
		if err := h.AuthenticationService.Logout(ctx, claims.UserID); err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, requestresponse.LogoutResponse{Success: true})
		return
	}

	refreshToken := extractRefreshToken(r)
	if refreshToken == "" {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	if err := h.AuthenticationService.LogoutByToken(ctx, refreshToken); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.LogoutResponse{Success: true})
}
