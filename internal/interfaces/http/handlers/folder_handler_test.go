package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"artifact-vault.backend/internal/domain/entities"
)

func newFolderRouter(e *testEngines) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewFolderHandler(e.folders)
	r := gin.New()
	r.POST("/folders", h.CreateFolder)
	r.GET("/folders", h.ListFolders)
	r.GET("/folders/:id", h.GetFolder)
	r.PUT("/folders/:id", h.UpdateFolder)
	r.DELETE("/folders/:id", h.DeleteFolder)
	r.PUT("/folders/:id/catalogs/:catalogId", h.AddCatalog)
	r.DELETE("/folders/:id/catalogs/:catalogId", h.RemoveCatalog)
	return r
}

func TestFolderHandler_CreateAndGet(t *testing.T) {
	e := newTestEngines(nil, nil)
	catalog, err := e.catalogs.Create("Favorites", "")
	require.NoError(t, err)
	r := newFolderRouter(e)

	req := httptest.NewRequest(http.MethodPost, "/folders",
		strings.NewReader(`{"name":"Art","catalogIds":["`+catalog.ID+`","unknown"]}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Folder entities.Folder `json:"folder"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []string{catalog.ID}, body.Folder.CatalogIDs, "unknown seed ids are dropped")

	req = httptest.NewRequest(http.MethodGet, "/folders/"+body.Folder.ID, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"name":"Art"`)
}

func TestFolderHandler_CreateValidation(t *testing.T) {
	e := newTestEngines(nil, nil)
	r := newFolderRouter(e)

	req := httptest.NewRequest(http.MethodPost, "/folders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFolderHandler_UpdateReplacesCatalogs(t *testing.T) {
	e := newTestEngines(nil, nil)
	c1, err := e.catalogs.Create("One", "")
	require.NoError(t, err)
	c2, err := e.catalogs.Create("Two", "")
	require.NoError(t, err)
	folder, err := e.folders.Create("Art", "", []string{c1.ID})
	require.NoError(t, err)
	r := newFolderRouter(e)

	req := httptest.NewRequest(http.MethodPut, "/folders/"+folder.ID,
		strings.NewReader(`{"catalogIds":["`+c2.ID+`"]}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Folder entities.Folder `json:"folder"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []string{c2.ID}, body.Folder.CatalogIDs)
}

func TestFolderHandler_AddRemoveCatalog(t *testing.T) {
	e := newTestEngines(nil, nil)
	catalog, err := e.catalogs.Create("Favorites", "")
	require.NoError(t, err)
	folder, err := e.folders.Create("Art", "", nil)
	require.NoError(t, err)
	r := newFolderRouter(e)

	req := httptest.NewRequest(http.MethodPut, "/folders/"+folder.ID+"/catalogs/"+catalog.ID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := e.folders.Get(folder.ID)
	require.NoError(t, err)
	require.Equal(t, []string{catalog.ID}, got.CatalogIDs)

	req = httptest.NewRequest(http.MethodDelete, "/folders/"+folder.ID+"/catalogs/"+catalog.ID, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err = e.folders.Get(folder.ID)
	require.NoError(t, err)
	require.Empty(t, got.CatalogIDs)

	req = httptest.NewRequest(http.MethodPut, "/folders/"+folder.ID+"/catalogs/unknown", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFolderHandler_Delete(t *testing.T) {
	e := newTestEngines(nil, nil)
	folder, err := e.folders.Create("Art", "", nil)
	require.NoError(t, err)
	r := newFolderRouter(e)

	req := httptest.NewRequest(http.MethodDelete, "/folders/"+folder.ID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/folders/"+folder.ID, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
