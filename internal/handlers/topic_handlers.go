package handlers

import (
	"errors"
	"net/http"
	"taskify/internal/attachment"
	"taskify/internal/handlers/dto"
	"taskify/internal/logger"
	"taskify/internal/service"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

const attachmentField = "file"

type TopicHandler struct {
	TopicService       TopicService
	MaxAttachmentBytes int64
}

func NewTopicHandler(topicService TopicService, maxAttachmentBytes int64) TopicHandler {
	if maxAttachmentBytes <= 0 {
		maxAttachmentBytes = 10 << 20
	}
	return TopicHandler{
		TopicService:       topicService,
		MaxAttachmentBytes: maxAttachmentBytes,
	}
}

func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}

	topics, err := h.TopicService.ListTopics(r.Context(), owner, r.URL.Query().Get("sort"))
	if err != nil {
		handleServiceError(w, r, err, "list_topics")
		return
	}

	responseWithJSON(w, http.StatusOK, dto.FromTopicList(topics))
}

func (h *TopicHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	owner, ok := caller(w, r)
	if !ok {
		return
	}

	var request dto.CreateTopicRequest
	if checkContentType(r, contentTypeMultipart) {
		form, ok := h.readTopicForm(w, r)
		if !ok {
			return
		}
		request = form.createRequest()
	} else if !decodeJSON(w, r, &request) {
		return
	}

	created, err := h.TopicService.CreateTopic(r.Context(), owner, request.Draft())
	if err != nil {
		handleServiceError(w, r, err, "create_topic")
		return
	}

	logger.Info("HTTP_OUT: Тема создана",
		zap.String("topic_id", created.UUID.String()),
		zap.Int("subtopics", len(created.Subtopics)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, dto.FromTopic(created))
}

func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.TopicService.GetTopic(r.Context(), owner, id)
	if err != nil {
		handleServiceError(w, r, err, "get_topic")
		return
	}

	responseWithJSON(w, http.StatusOK, dto.FromTopic(found))
}

func (h *TopicHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.UpdateTopicRequest
	if checkContentType(r, contentTypeMultipart) {
		form, ok := h.readTopicForm(w, r)
		if !ok {
			return
		}
		request = form.updateRequest()
	} else if !decodeJSON(w, r, &request) {
		return
	}

	updated, err := h.TopicService.UpdateTopic(r.Context(), owner, id, request.Patch())
	if err != nil {
		handleServiceError(w, r, err, "update_topic")
		return
	}

	responseWithJSON(w, http.StatusOK, dto.FromTopic(updated))
}

func (h *TopicHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.TopicService.DeleteTopic(r.Context(), owner, id); err != nil {
		handleServiceError(w, r, err, "delete_topic")
		return
	}

	logger.Info("HTTP_OUT: Тема удалена", zap.String("topic_id", id.String()))

	responseWithJSON(w, http.StatusOK, dto.DeletedResponse{ID: id.String()})
}

func (h *TopicHandler) AddSubtopic(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.AddSubtopicRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	updated, err := h.TopicService.AddSubtopic(r.Context(), owner, id, request.Title)
	if err != nil {
		handleServiceError(w, r, err, "add_subtopic")
		return
	}

	responseWithJSON(w, http.StatusCreated, dto.FromTopic(updated))
}

func (h *TopicHandler) ToggleSubtopic(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	subtopicID, ok := parseID(w, r, "subtopicId")
	if !ok {
		return
	}

	updated, err := h.TopicService.ToggleSubtopic(r.Context(), owner, id, subtopicID)
	if err != nil {
		handleServiceError(w, r, err, "toggle_subtopic")
		return
	}

	responseWithJSON(w, http.StatusOK, dto.FromTopic(updated))
}

func (h *TopicHandler) AttachToSubtopic(w http.ResponseWriter, r *http.Request) {
	owner, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	subtopicID, ok := parseID(w, r, "subtopicId")
	if !ok {
		return
	}

	if !checkContentType(r, contentTypeMultipart) {
		responseWithError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type должен быть multipart/form-data")
		return
	}

	form, ok := h.readTopicForm(w, r)
	if !ok {
		return
	}
	if form.attachmentURL == "" {
		handleBusinessError(w, service.NewValidationError(attachmentField, "файл не передан"))
		return
	}

	updated, err := h.TopicService.AttachToSubtopic(r.Context(), owner, id, subtopicID, form.attachmentURL)
	if err != nil {
		handleServiceError(w, r, err, "attach_to_subtopic")
		return
	}

	responseWithJSON(w, http.StatusOK, dto.FromTopic(updated))
}

// topicForm - поля multipart формы темы; has* отмечают присланные поля
type topicForm struct {
	title          string
	hasTitle       bool
	description    string
	hasDescription bool
	subtopics      []dto.SubtopicRequest
	hasSubtopics   bool
	attachmentURL  string
}

func (f topicForm) createRequest() dto.CreateTopicRequest {
	return dto.CreateTopicRequest{
		Title:         f.title,
		Description:   f.description,
		AttachmentURL: f.attachmentURL,
		Subtopics:     f.subtopics,
	}
}

func (f topicForm) updateRequest() dto.UpdateTopicRequest {
	var req dto.UpdateTopicRequest
	if f.hasTitle {
		req.Title = &f.title
	}
	if f.hasDescription {
		req.Description = &f.description
	}
	if f.hasSubtopics {
		req.Subtopics = &f.subtopics
	}
	if f.attachmentURL != "" {
		req.AttachmentURL = &f.attachmentURL
	}
	return req
}

func (h *TopicHandler) readTopicForm(w http.ResponseWriter, r *http.Request) (topicForm, bool) {
	var form topicForm

	if err := r.ParseMultipartForm(h.MaxAttachmentBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			responseWithError(w, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE", "тело запроса слишком большое")
			return form, false
		}
		logger.Warn("HTTP: ошибка чтения формы", zap.Error(err), zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "INVALID_FORM", "неверная multipart форма")
		return form, false
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	values := r.MultipartForm.Value
	if v, ok := values["title"]; ok && len(v) > 0 {
		form.title, form.hasTitle = v[0], true
	}
	if v, ok := values["description"]; ok && len(v) > 0 {
		form.description, form.hasDescription = v[0], true
	}
	if v, ok := values["subtopics"]; ok && len(v) > 0 {
		form.hasSubtopics = true
		form.subtopics = []dto.SubtopicRequest{}
		if v[0] != "" {
			if err := sonic.ConfigStd.UnmarshalFromString(v[0], &form.subtopics); err != nil {
				handleBusinessError(w, service.NewValidationError("subtopics", "ожидается JSON массив подтем"))
				return form, false
			}
		}
	}

	files := r.MultipartForm.File[attachmentField]
	if len(files) == 0 {
		return form, true
	}

	header := files[0]
	file, err := header.Open()
	if err != nil {
		responseWithError(w, http.StatusBadRequest, "INVALID_FORM", "не удалось открыть файл")
		return form, false
	}
	defer file.Close()

	dataURL, err := attachment.EncodePDF(file, header.Header.Get("Content-Type"), h.MaxAttachmentBytes)
	if err != nil {
		logger.Warn("HTTP: вложение отклонено",
			zap.Error(err),
			zap.String("filename", header.Filename),
			zap.Int64("size", header.Size))
		handleBusinessError(w, service.NewValidationError(attachmentField, err.Error()))
		return form, false
	}
	form.attachmentURL = dataURL

	return form, true
}
