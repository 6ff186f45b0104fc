package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"blog-web-server/internal/model"
	"blog-web-server/internal/model/requestresponse"
)

// decodeJSON обрабатывает декодирование JSON и возвращает ответ об ошибке,
// если декодирование не удалось
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return err
	}
	return nil
}

// decodeBody декодирует тело запроса без записи ответа об ошибке,
// для случаев когда тело опционально
func decodeBody(r *http.Request, target interface{}) error {
	if r.Body == nil {
		return errors.New("пустое тело запроса")
	}
	return json.NewDecoder(r.Body).Decode(target)
}

// sendErrorResponse отправляет ответ об ошибке JSON с указанным кодом
// статуса и сообщением
func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// handleServiceError переводит класс ошибки сервиса в HTTP статус
func handleServiceError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case errors.Is(err, model.ErrValidation):
		sendErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrConflict):
		sendErrorResponse(w, http.StatusConflict, "запись уже существует")
	case errors.Is(err, model.ErrUnauthorized):
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
	case errors.Is(err, model.ErrForbidden):
		sendErrorResponse(w, http.StatusForbidden, "доступ запрещён")
	case errors.Is(err, model.ErrNotFound):
		sendErrorResponse(w, http.StatusNotFound, "не найдено")
	default:
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}
