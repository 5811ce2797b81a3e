package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/ifportal/portal-go/internal/store"
)

type upload struct {
	field    string
	filename string
	data     []byte
}

// postMultipart submits a multipart form with the given text fields and
// file parts.
func postMultipart(t *testing.T, client *http.Client, u string, fields map[string]string, uploads []upload) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("writing field %q: %v", name, err)
		}
	}
	for _, up := range uploads {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, up.field, up.filename))
		h.Set("Content-Type", "application/octet-stream")
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("creating part for %q: %v", up.field, err)
		}
		if _, err := part.Write(up.data); err != nil {
			t.Fatalf("writing part for %q: %v", up.field, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	resp, err := client.Post(u, mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", u, err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func TestNewsCreate_TruncatesToFourImages(t *testing.T) {
	srv, db := newTestApp(t)
	client := testClient(t)
	login(t, srv.URL, client, db)

	var uploads []upload
	for i := 0; i < 5; i++ {
		uploads = append(uploads, upload{
			field:    "imagens",
			filename: fmt.Sprintf("foto%d.png", i),
			data:     []byte{0x89, 0x50, 0x4e, 0x47, byte(i)},
		})
	}

	resp := postMultipart(t, client, srv.URL+RouteNewsNew, map[string]string{
		"titulo":    "Semana de tecnologia",
		"subtitulo": "Inscrições abertas",
		"corpo":     "Confira a programação completa.",
	}, uploads)
	assertRedirect(t, resp, RoutePanel)

	posts, err := store.New(db).ListNewsPosts(context.Background())
	if err != nil {
		t.Fatalf("listing news: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("post count = %d; want 1", len(posts))
	}
	if len(posts[0].Images) != 4 {
		t.Fatalf("image count = %d; want 4", len(posts[0].Images))
	}
	// The first four uploads survive in submission order.
	for i, img := range posts[0].Images {
		if img[len(img)-1] != byte(i) {
			t.Errorf("image %d has payload marker %d", i, img[len(img)-1])
		}
	}
}

func TestNewsCreate_NoImages(t *testing.T) {
	srv, db := newTestApp(t)
	client := testClient(t)
	login(t, srv.URL, client, db)

	resp := postMultipart(t, client, srv.URL+RouteNewsNew, map[string]string{
		"titulo": "Aviso de matrícula",
	}, nil)
	assertRedirect(t, resp, RoutePanel)

	posts, err := store.New(db).ListNewsPosts(context.Background())
	if err != nil {
		t.Fatalf("listing news: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("post count = %d; want 1", len(posts))
	}
	if posts[0].Images != nil {
		t.Errorf("Images = %v; want nil", posts[0].Images)
	}
}

func TestNewsCreate_SkipsEmptyFilename(t *testing.T) {
	srv, db := newTestApp(t)
	client := testClient(t)
	login(t, srv.URL, client, db)

	uploads := []upload{
		{field: "imagens", filename: "", data: nil},
		{field: "imagens", filename: "foto.png", data: []byte{0x89, 0x50}},
	}
	resp := postMultipart(t, client, srv.URL+RouteNewsNew, map[string]string{
		"titulo": "Edital publicado",
	}, uploads)
	assertRedirect(t, resp, RoutePanel)

	posts, err := store.New(db).ListNewsPosts(context.Background())
	if err != nil {
		t.Fatalf("listing news: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("post count = %d; want 1", len(posts))
	}
	if len(posts[0].Images) != 1 {
		t.Errorf("image count = %d; want 1", len(posts[0].Images))
	}
}

func TestNewsCreate_RequiresTitle(t *testing.T) {
	srv, db := newTestApp(t)
	client := testClient(t)
	login(t, srv.URL, client, db)

	resp := postMultipart(t, client, srv.URL+RouteNewsNew, map[string]string{
		"corpo": "Texto sem título.",
	}, nil)
	assertRedirect(t, resp, RouteNewsNew)

	posts, err := store.New(db).ListNewsPosts(context.Background())
	if err != nil {
		t.Fatalf("listing news: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("post count = %d; want 0", len(posts))
	}
}

func TestNewsPublicList_Anonymous(t *testing.T) {
	srv, db := newTestApp(t)
	client := testClient(t)

	queries := store.New(db)
	for _, title := range []string{"Primeira", "Segunda"} {
		if _, err := queries.CreateNewsPost(context.Background(), store.CreateNewsPostParams{
			Title:     title,
			Body:      "Corpo em **markdown**.",
			CreatedAt: time.Now(),
		}); err != nil {
			t.Fatalf("seeding post %q: %v", title, err)
		}
	}

	resp := getPage(t, client, srv.URL+RouteNewsPublic)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d; want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "Primeira") || !strings.Contains(page, "Segunda") {
		t.Error("public listing should include both posts")
	}
	// Newest first.
	if strings.Index(page, "Segunda") > strings.Index(page, "Primeira") {
		t.Error("public listing should show the newest post first")
	}
	if !strings.Contains(page, "<strong>markdown</strong>") {
		t.Error("post bodies should be rendered from markdown")
	}
}
