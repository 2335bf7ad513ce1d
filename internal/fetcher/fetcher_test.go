package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestFetcher(cfg Config) *Fetcher {
	return New(cfg, WithClock(func() time.Time { return fixedNow }))
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_ExtractsTitleAndMainContent(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html><head><title>Week 5 Announcements</title>
<script>var x = "homework";</script></head>
<body><nav>Home | Courses</nav>
<main><h2>Math</h2><p>Math homework: solve problems 1-10   due tomorrow.</p></main>
<footer>Contact</footer></body></html>`)

	content, err := newTestFetcher(Config{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Week 5 Announcements", content.Title)
	assert.Equal(t, "Math Math homework: solve problems 1-10 due tomorrow.", content.Content)
	assert.Equal(t, srv.URL, content.URL)
	assert.Equal(t, fixedNow, content.Timestamp)
}

func TestFetch_SelectorOrder(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "role main",
			body: `<body><div role="main">Read chapter 5</div><div class="content">other</div></body>`,
			want: "Read chapter 5",
		},
		{
			name: "class among several",
			body: `<body><div class="card assignment wide">Essay on Hamlet</div></body>`,
			want: "Essay on Hamlet",
		},
		{
			name: "article before description",
			body: `<body><div class="description">desc</div><article>Lab report</article></body>`,
			want: "Lab report",
		},
		{
			name: "long paragraphs when no selector matches",
			body: `<body><p>short</p><p>Complete the worksheet on fractions</p><p>Study for the quiz on Friday please</p></body>`,
			want: "Complete the worksheet on fractions Study for the quiz on Friday please",
		},
		{
			name: "body text as last resort",
			body: `<body><div>Project <b>due</b> next week</div></body>`,
			want: "Project due next week",
		},
		{
			name: "script and style skipped",
			body: `<body><main><style>p{}</style>Solve problems<noscript>enable js</noscript></main></body>`,
			want: "Solve problems",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, http.StatusOK, "<html>"+tt.body+"</html>")

			content, err := newTestFetcher(Config{}).Fetch(context.Background(), srv.URL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, content.Content)
		})
	}
}

func TestFetch_TitleFallbacks(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html><body><h1>Unit 3</h1><main>Write an essay</main></body></html>`)
	content, err := newTestFetcher(Config{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Unit 3", content.Title)

	srv = serve(t, http.StatusOK, `<html><body><main>Write an essay</main></body></html>`)
	content, err = newTestFetcher(Config{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Extracted Content", content.Title)
}

func TestFetch_ErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		url      string
		kind     Kind
		sentinel error
	}{
		{name: "forbidden", status: http.StatusForbidden, kind: KindCORS, sentinel: ErrCORS},
		{name: "unauthorized", status: http.StatusUnauthorized, kind: KindCORS, sentinel: ErrCORS},
		{name: "server error", status: http.StatusInternalServerError, kind: KindNetwork, sentinel: ErrNetwork},
		{name: "not found", status: http.StatusNotFound, kind: KindNetwork, sentinel: ErrNetwork},
		{name: "empty page", status: http.StatusOK, body: "<html><body>  </body></html>", kind: KindNoContent, sentinel: ErrNoContent},
		{name: "bad scheme", url: "ftp://example.com/file", kind: KindInvalidURL, sentinel: ErrInvalidURL},
		{name: "no scheme", url: "not a url", kind: KindInvalidURL, sentinel: ErrInvalidURL},
		{name: "empty url", url: " ", kind: KindInvalidURL, sentinel: ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.url
			if target == "" {
				target = serve(t, tt.status, tt.body).URL
			}

			content, err := newTestFetcher(Config{}).Fetch(context.Background(), target)
			require.Error(t, err)
			assert.Nil(t, content)

			var fetchErr *Error
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, tt.kind, fetchErr.Kind)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Contains(t, err.Error(), "failed to fetch content from")
		})
	}
}

func TestFetch_UnreachableHost(t *testing.T) {
	srv := serve(t, http.StatusOK, "")
	url := srv.URL
	srv.Close()

	_, err := newTestFetcher(Config{}).Fetch(context.Background(), url)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := newTestFetcher(Config{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetch_Proxy(t *testing.T) {
	var gotURL, gotAgent string
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		gotAgent = r.UserAgent()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contents":"<html><title>Proxied</title><main>Read chapter 2</main></html>"}`))
	}))
	defer proxy.Close()

	f := newTestFetcher(Config{ProxyURL: proxy.URL + "/get?url=", UserAgent: "hwk-test"})
	content, err := f.Fetch(context.Background(), "https://school.example.com/page?id=1")
	require.NoError(t, err)

	assert.Equal(t, "https://school.example.com/page?id=1", gotURL)
	assert.Equal(t, "hwk-test", gotAgent)
	assert.Equal(t, "Proxied", content.Title)
	assert.Equal(t, "Read chapter 2", content.Content)
	assert.Equal(t, "https://school.example.com/page?id=1", content.URL)
}

func TestFetch_ProxyBadJSON(t *testing.T) {
	proxy := serve(t, http.StatusOK, "<html>not json</html>")

	_, err := newTestFetcher(Config{ProxyURL: proxy.URL + "/get?url="}).Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, ErrParse)
}

func TestFetch_MaxBytes(t *testing.T) {
	srv := serve(t, http.StatusOK, "<html><body><main>"+strings.Repeat("a", 64)+"tail</main></body></html>")

	content, err := newTestFetcher(Config{MaxBytes: 40}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.NotContains(t, content.Content, "tail")
}

func TestSuggestion(t *testing.T) {
	assert.Contains(t, Suggestion(newError(KindCORS, "u", nil)), "copying the text content directly")
	assert.Contains(t, Suggestion(newError(KindInvalidURL, "u", nil)), "http:// or https://")
	assert.Contains(t, Suggestion(newError(KindNoContent, "u", nil)), "require login")
	assert.Equal(t, "Please try again or use the text extraction method as an alternative.", Suggestion(errors.New("boom")))
}

func TestIsClassroomURL(t *testing.T) {
	assert.True(t, IsClassroomURL("https://classroom.google.com/c/abc"))
	assert.True(t, IsClassroomURL("https://moodle.myschool.edu/course/view.php?id=4"))
	assert.False(t, IsClassroomURL("https://example.com/homework"))
}
