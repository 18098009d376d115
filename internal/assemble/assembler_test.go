package assemble

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"blogforge/internal/frontmatter"
	"blogforge/internal/imagefetch"
	"blogforge/internal/markdown"
	"blogforge/internal/post"
	"blogforge/internal/textgen"
	"blogforge/internal/topic"
)

const testTopic = "Обзор новой архитектуры нейросети"

var testDate = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func textServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, body)
	}))
}

func failingImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
}

func newAssembler(t *testing.T, text textgen.Provider, imagesDir string, imageClient imagefetch.Client) (*Assembler, string) {
	t.Helper()
	postsDir := filepath.Join(t.TempDir(), "content", "posts")
	a := &Assembler{
		Text: text,
		Images: imagefetch.NewChain(
			imagefetch.Reuse{Dir: imagesDir},
			imagefetch.Remote{Client: imageClient, Dir: imagesDir, Format: imagefetch.FormatPNG},
		),
		FrontMatter:  frontmatter.NewBuilder(frontmatter.YAML),
		Topics:       topic.NewPicker([]string{testTopic}, rand.NewSource(1)),
		Prompts:      topic.NewPicker([]string{"neon brain"}, rand.NewSource(1)),
		PostsDir:     postsDir,
		ImageBaseURL: "/images/gallery",
		Now:          func() time.Time { return testDate },
	}
	return a, postsDir
}

// Scenario A: remote text succeeds, no prior asset, remote image fails.
func TestCreatePostRemoteTextNoImage(t *testing.T) {
	txt := textServer(t, "Свежий обзор архитектуры.")
	defer txt.Close()
	img := failingImageServer(t)
	defer img.Close()

	remote := textgen.NewOpenAI(textgen.OpenAIConfig{
		APIKey: "k", BaseURL: txt.URL + "/v1", Model: "gpt-4o-mini",
		MaxAttempts: 1, Backoff: time.Millisecond,
	})
	a, postsDir := newAssembler(t, textgen.NewSelector(remote), t.TempDir(), imagefetch.NewURLClient(img.URL, time.Second))

	rec, err := a.CreatePost(context.Background(), testTopic)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	wantFile := "2024-01-01-обзор-новой-архитектуры-нейросети.md"
	if rec.Filename() != wantFile {
		t.Errorf("Filename = %q, want %q", rec.Filename(), wantFile)
	}
	doc, err := markdown.ParseFile(filepath.Join(postsDir, wantFile))
	if err != nil {
		t.Fatalf("parse written post: %v", err)
	}
	if _, ok := doc.Frontmatter["image"]; ok {
		t.Error("front matter must omit image key when no asset was acquired")
	}
	if doc.Frontmatter["title"] != testTopic {
		t.Errorf("title = %v", doc.Frontmatter["title"])
	}
	if !strings.Contains(doc.Body, "Свежий обзор архитектуры.") {
		t.Errorf("body missing remote text: %q", doc.Body)
	}
	if rec.Origin != post.TextRemote {
		t.Errorf("origin = %q, want remote", rec.Origin)
	}
}

// Scenario B: no credential configured; body is the deterministic fallback.
func TestCreatePostNoCredentialUsesFallback(t *testing.T) {
	img := failingImageServer(t)
	defer img.Close()

	a, postsDir := newAssembler(t, textgen.NewSelector(nil), t.TempDir(), imagefetch.NewURLClient(img.URL, time.Second))
	rec, err := a.CreatePost(context.Background(), testTopic)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if rec.Origin != post.TextFallback {
		t.Fatalf("origin = %q, want fallback", rec.Origin)
	}
	var fp textgen.FallbackProvider
	want, _ := fp.Generate(context.Background(), testTopic)
	data, err := os.ReadFile(filepath.Join(postsDir, rec.Filename()))
	if err != nil {
		t.Fatalf("read written post: %v", err)
	}
	if !strings.Contains(string(data), want.Body) {
		t.Error("written body does not equal fallback template")
	}
	if !strings.Contains(string(data), testTopic) {
		t.Error("fallback body must mention topic verbatim")
	}
}

// Scenario C: same-day re-run overwrites; final content matches second run.
func TestCreatePostSameDayOverwrites(t *testing.T) {
	img := failingImageServer(t)
	defer img.Close()

	bodies := []string{"Первая версия.", "Вторая версия."}
	call := 0
	txt := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, bodies[call])
		call++
	}))
	defer txt.Close()

	remote := textgen.NewOpenAI(textgen.OpenAIConfig{
		APIKey: "k", BaseURL: txt.URL + "/v1", Model: "gpt-4o-mini",
		MaxAttempts: 1, Backoff: time.Millisecond,
	})
	a, postsDir := newAssembler(t, textgen.NewSelector(remote), t.TempDir(), imagefetch.NewURLClient(img.URL, time.Second))

	first, err := a.CreatePost(context.Background(), testTopic)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := a.CreatePost(context.Background(), testTopic)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Filename() != second.Filename() {
		t.Fatalf("filenames differ: %q vs %q", first.Filename(), second.Filename())
	}
	data, err := os.ReadFile(filepath.Join(postsDir, second.Filename()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Вторая версия.") {
		t.Error("file must contain the second run's body")
	}
	if strings.Contains(string(data), "Первая версия.") {
		t.Error("file must not retain the first run's body")
	}
}

func TestCreatePostWithReusedImage(t *testing.T) {
	imagesDir := t.TempDir()
	prior := filepath.Join(imagesDir, "2023-12-31-старый.png")
	if err := os.WriteFile(prior, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	img := failingImageServer(t)
	defer img.Close()

	a, postsDir := newAssembler(t, textgen.NewSelector(nil), imagesDir, imagefetch.NewURLClient(img.URL, time.Second))
	rec, err := a.CreatePost(context.Background(), testTopic)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if rec.Image.Origin != post.ImageReused {
		t.Fatalf("image origin = %q, want reused", rec.Image.Origin)
	}
	doc, err := markdown.ParseFile(filepath.Join(postsDir, rec.Filename()))
	if err != nil {
		t.Fatal(err)
	}
	imageVal, ok := doc.Frontmatter["image"].(string)
	if !ok {
		t.Fatalf("front matter image key missing: %+v", doc.Frontmatter)
	}
	if !strings.HasPrefix(imageVal, "/images/gallery/2024-01-01-") {
		t.Errorf("image = %q", imageVal)
	}
	if !strings.Contains(doc.Body, "![") {
		t.Error("body should reference the cover image")
	}
}

func TestCreatePostPicksTopicWhenEmpty(t *testing.T) {
	img := failingImageServer(t)
	defer img.Close()
	a, _ := newAssembler(t, textgen.NewSelector(nil), t.TempDir(), imagefetch.NewURLClient(img.URL, time.Second))
	rec, err := a.CreatePost(context.Background(), "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if rec.Title != testTopic {
		t.Errorf("picked title = %q, want catalog entry", rec.Title)
	}
}

func TestRunGeneratesCount(t *testing.T) {
	img := failingImageServer(t)
	defer img.Close()
	a, postsDir := newAssembler(t, textgen.NewSelector(nil), t.TempDir(), imagefetch.NewURLClient(img.URL, time.Second))
	if err := a.Run(context.Background(), 2, 0); err != nil {
		t.Fatalf("Run: %v", err)
	}
	entries, err := os.ReadDir(postsDir)
	if err != nil {
		t.Fatal(err)
	}
	// Single-topic catalog on a fixed date collapses to one file (overwrite).
	if len(entries) != 1 {
		t.Fatalf("expected 1 file, got %d", len(entries))
	}
}
