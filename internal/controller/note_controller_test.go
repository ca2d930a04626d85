package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/service"
	"notekeeper-be/internal/storage"
	"notekeeper-be/internal/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-test-secret"

// fakeNoteService implements service.INoteService over an in-memory slice,
// enough to exercise the HTTP mapping.
type fakeNoteService struct {
	notes map[uuid.UUID]*entity.Note
}

func newFakeNoteService() *fakeNoteService {
	return &fakeNoteService{notes: make(map[uuid.UUID]*entity.Note)}
}

func (f *fakeNoteService) owned(userId, id uuid.UUID) *entity.Note {
	n, ok := f.notes[id]
	if !ok || n.UserId != userId {
		return nil
	}
	return n
}

func (f *fakeNoteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest, imageRef string) (*entity.Note, error) {
	n := &entity.Note{
		Id:                 uuid.New(),
		Title:              req.Title,
		Description:        req.Description,
		Image:              imageRef,
		UserId:             userId,
		IsAudioNote:        req.IsAudioNote,
		AudioTranscription: req.AudioTranscription,
		CreatedAt:          time.Now(),
	}
	f.notes[n.Id] = n
	return n, nil
}

func (f *fakeNoteService) List(ctx context.Context, userId uuid.UUID) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range f.notes {
		if n.UserId == userId {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteService) ListFavorites(ctx context.Context, userId uuid.UUID) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range f.notes {
		if n.UserId == userId && n.IsFavorite {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest, imageRef string) (*entity.Note, error) {
	n := f.owned(userId, req.Id)
	if n == nil {
		return nil, service.ErrNoteNotFound
	}
	if req.Title != "" {
		n.Title = req.Title
	}
	if req.Description != "" {
		n.Description = req.Description
	}
	if imageRef != "" {
		n.Image = imageRef
	}
	return n, nil
}

func (f *fakeNoteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	if f.owned(userId, id) == nil {
		return service.ErrNoteNotFound
	}
	delete(f.notes, id)
	return nil
}

func (f *fakeNoteService) ToggleFavorite(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.Note, error) {
	n := f.owned(userId, id)
	if n == nil {
		return nil, service.ErrNoteNotFound
	}
	n.IsFavorite = !n.IsFavorite
	return n, nil
}

func newTestApp(t *testing.T, svc service.INoteService) *fiber.App {
	t.Helper()

	backend, err := storage.NewLocalBackend(t.TempDir(), "/uploads")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	api := app.Group("/api")
	NewNoteController(svc, upload.NewHandler(backend), false).
		RegisterRoutes(api, serverutils.NewJwtMiddleware(testSecret))
	return app
}

func bearerFor(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	token, err := serverutils.SignUserToken(testSecret, userId.String(), time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func noteForm(t *testing.T, fields map[string]string, image []byte, imageType string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename="pic.png"`, upload.FieldName))
		header.Set("Content-Type", imageType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestAliveIsUnauthenticated(t *testing.T) {
	app := newTestApp(t, newFakeNoteService())

	req := httptest.NewRequest(http.MethodGet, "/api/note/alive", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "alive", body["status"])

	_, err = time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err, "timestamp must be ISO8601")
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app := newTestApp(t, newFakeNoteService())

	req := httptest.NewRequest(http.MethodGet, "/api/note/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateNoteWithoutImage(t *testing.T) {
	app := newTestApp(t, newFakeNoteService())
	userId := uuid.New()

	body, contentType := noteForm(t, map[string]string{
		"title":       "Shopping",
		"description": "Milk, eggs",
	}, nil, "")

	req := httptest.NewRequest(http.MethodPost, "/api/note/add", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, userId))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	got := decodeBody(t, resp)
	assert.Equal(t, "Created Note successfully", got["message"])

	note := got["note"].(map[string]interface{})
	assert.Equal(t, "Shopping", note["title"])
	assert.Equal(t, "", note["image"], "imageless note serializes image as empty string")
	assert.Equal(t, userId.String(), note["userId"])
}

func TestCreateNoteWithImage(t *testing.T) {
	app := newTestApp(t, newFakeNoteService())

	body, contentType := noteForm(t, map[string]string{
		"title":       "With pic",
		"description": "d",
	}, []byte("png-bytes"), "image/png")

	req := httptest.NewRequest(http.MethodPost, "/api/note/add", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, uuid.New()))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	note := decodeBody(t, resp)["note"].(map[string]interface{})
	assert.Contains(t, note["image"], "/uploads/")
}

func TestCreateNoteMissingTitleIsRejected(t *testing.T) {
	svc := newFakeNoteService()
	app := newTestApp(t, svc)

	body, contentType := noteForm(t, map[string]string{"description": "d"}, nil, "")

	req := httptest.NewRequest(http.MethodPost, "/api/note/add", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, uuid.New()))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, svc.notes, "no note may be created on validation failure")
}

func TestCreateNoteInvalidImageTypeIsRejected(t *testing.T) {
	svc := newFakeNoteService()
	app := newTestApp(t, svc)

	body, contentType := noteForm(t, map[string]string{
		"title":       "t",
		"description": "d",
	}, []byte("gif-bytes"), "image/gif")

	req := httptest.NewRequest(http.MethodPost, "/api/note/add", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, uuid.New()))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, svc.notes)
}

func TestCreateNoteOversizeImageIsRejected(t *testing.T) {
	svc := newFakeNoteService()
	app := newTestApp(t, svc)

	big := make([]byte, upload.MaxFileSize+1)
	body, contentType := noteForm(t, map[string]string{
		"title":       "t",
		"description": "d",
	}, big, "image/png")

	req := httptest.NewRequest(http.MethodPost, "/api/note/add", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, uuid.New()))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Empty(t, svc.notes)
}

func TestListReturnsOwnNotesOnly(t *testing.T) {
	svc := newFakeNoteService()
	app := newTestApp(t, svc)
	alice, bob := uuid.New(), uuid.New()

	_, err := svc.Create(context.Background(), alice, &dto.CreateNoteRequest{Title: "mine", Description: "d"}, "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bob, &dto.CreateNoteRequest{Title: "theirs", Description: "d"}, "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/note/", nil)
	req.Header.Set("Authorization", bearerFor(t, alice))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody(t, resp)
	assert.Equal(t, true, got["success"])

	notes := got["Notes"].([]interface{})
	require.Len(t, notes, 1)
	assert.Equal(t, "mine", notes[0].(map[string]interface{})["title"])
}

func TestFavouritesReturnsBareArray(t *testing.T) {
	svc := newFakeNoteService()
	app := newTestApp(t, svc)
	owner := uuid.New()

	n, err := svc.Create(context.Background(), owner, &dto.CreateNoteRequest{Title: "fav", Description: "d"}, "")
	require.NoError(t, err)
	_, err = svc.ToggleFavorite(context.Background(), owner, n.Id)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), owner, &dto.CreateNoteRequest{Title: "plain", Description: "d"}, "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/note/favourites", nil)
	req.Header.Set("Authorization", bearerFor(t, owner))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var notes []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "fav", notes[0]["title"])
}

func TestUpdateDescriptionOnly(t *testing.T) {
	svc := newFakeNoteService()
	app := newTestApp(t, svc)
	owner := uuid.New()

	n, err := svc.Create(context.Background(), owner, &dto.CreateNoteRequest{Title: "keep", Description: "old"}, "")
	require.NoError(t, err)

	body, contentType := noteForm(t, map[string]string{"description": "new"}, nil, "")
	req := httptest.NewRequest(http.MethodPut, "/api/note/"+n.Id.String(), body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, owner))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody(t, resp)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "Note updated successfully", got["message"])

	note := got["note"].(map[string]interface{})
	assert.Equal(t, "keep", note["title"])
	assert.Equal(t, "new", note["description"])
}

func TestUpdateUnknownNoteIs404(t *testing.T) {
	app := newTestApp(t, newFakeNoteService())

	body, contentType := noteForm(t, map[string]string{"title": "x"}, nil, "")
	req := httptest.NewRequest(http.MethodPut, "/api/note/"+uuid.New().String(), body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, uuid.New()))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	got := decodeBody(t, resp)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "Note not found or unauthorized", got["message"])
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	svc := newFakeNoteService()
	app := newTestApp(t, svc)
	owner := uuid.New()

	n, err := svc.Create(context.Background(), owner, &dto.CreateNoteRequest{Title: "t", Description: "d"}, "")
	require.NoError(t, err)

	toggle := func() map[string]interface{} {
		req := httptest.NewRequest(http.MethodPut, "/api/note/toggle-favorite/"+n.Id.String(), nil)
		req.Header.Set("Authorization", bearerFor(t, owner))
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decodeBody(t, resp)
	}

	assert.Equal(t, true, toggle()["isFavorite"])
	assert.Equal(t, false, toggle()["isFavorite"])
}

func TestToggleFavoriteOtherUsersNoteIs404(t *testing.T) {
	svc := newFakeNoteService()
	app := newTestApp(t, svc)

	n, err := svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{Title: "t", Description: "d"}, "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/note/toggle-favorite/"+n.Id.String(), nil)
	req.Header.Set("Authorization", bearerFor(t, uuid.New()))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Note not found", decodeBody(t, resp)["message"])
}

func TestDeleteNote(t *testing.T) {
	svc := newFakeNoteService()
	app := newTestApp(t, svc)
	owner := uuid.New()

	n, err := svc.Create(context.Background(), owner, &dto.CreateNoteRequest{Title: "t", Description: "d"}, "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/note/"+n.Id.String(), nil)
	req.Header.Set("Authorization", bearerFor(t, owner))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody(t, resp)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "Note deleted successfully", got["message"])
	assert.Empty(t, svc.notes)
}

func TestDeleteUnknownNoteIs404(t *testing.T) {
	app := newTestApp(t, newFakeNoteService())

	req := httptest.NewRequest(http.MethodDelete, "/api/note/"+uuid.New().String(), nil)
	req.Header.Set("Authorization", bearerFor(t, uuid.New()))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	got := decodeBody(t, resp)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "Note not found or unauthorized", got["message"])
}
