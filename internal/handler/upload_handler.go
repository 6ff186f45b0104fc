package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"blog-web-server/internal/ports"
	"blog-web-server/internal/security"
	"blog-web-server/internal/service"
	"blog-web-server/internal/util"

	"github.com/go-chi/chi/v5"
)

// allowedImageExtensions : форматы, принимаемые на вход.
// На выходе всегда WebP
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type UploadHandler struct {
	ports.UploadService
	maxSizeBytes int64
}

func NewUploadHandler(uploadService ports.UploadService, maxSizeBytes int64) *UploadHandler {
	return &UploadHandler{
		UploadService: uploadService,
		maxSizeBytes:  maxSizeBytes,
	}
}

// UploadImage godoc
// @Summary Загрузка изображения
// @Description Принимает jpg, jpeg, png или webp до 5 МБ, вписывает в целевой размер
// @Description (profile — 500x500, cover — 1200x630) и сохраняет в WebP.
// @Description Имя файла строится из username (profile) или поля title (cover).
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "Тип изображения" Enums(profile, cover)
// @Param file formData file true "Файл изображения"
// @Param title formData string false "Заголовок поста, используется для имени обложки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} model.UploadResult
// @Failure 400 {object} requestresponse.ErrorResponse "Файл не передан, слишком большой или неподдерживаемого формата"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/upload/{kind} [post]
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	kind := chi.URLParam(r, "kind")
	if kind != service.UploadKindProfile && kind != service.UploadKindCover {
		sendErrorResponse(w, http.StatusBadRequest, "kind должен быть profile или cover")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSizeBytes)
	if err := r.ParseMultipartForm(h.maxSizeBytes); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "файл превышает допустимый размер или тело запроса некорректно")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "файл не передан")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if allowedImageExtensions[ext] == false {
		sendErrorResponse(w, http.StatusBadRequest, "поддерживаются только jpg, jpeg, png и webp")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "не удалось прочитать файл")
		return
	}

	baseName := claims.Username
	if kind == service.UploadKindCover {
		baseName = util.SanitizeTitle(r.FormValue("title"))
	}

	result, err := h.UploadService.Process(r.Context(), kind, baseName, data)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedImage) {
			sendErrorResponse(w, http.StatusBadRequest, "неподдерживаемый формат изображения")
			return
		}
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
