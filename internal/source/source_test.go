package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbgrab/internal/fetch"
)

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/pages/post.html", []byte("<html>post</html>"), 0644))

	l := New(fs, strings.NewReader(""), nil, false)
	got, err := l.Load(context.Background(), "/pages/post.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>post</html>", got)
}

func TestLoadMissingFile(t *testing.T) {
	l := New(afero.NewMemMapFs(), strings.NewReader(""), nil, false)
	_, err := l.Load(context.Background(), "/nope.html")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadStdin(t *testing.T) {
	for _, arg := range []string{"", Stdin} {
		l := New(afero.NewMemMapFs(), strings.NewReader("piped page"), nil, false)
		got, err := l.Load(context.Background(), arg)
		require.NoError(t, err)
		assert.Equal(t, "piped page", got)
	}
}

func TestLoadRemote(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "remote page")
	}))
	defer srv.Close()

	log, _ := test.NewNullLogger()
	l := New(afero.NewMemMapFs(), strings.NewReader(""), fetch.New(srv.Client(), "", log), false)

	got, err := l.Load(context.Background(), srv.URL+"/watch")
	require.NoError(t, err)
	assert.Equal(t, "remote page", got)
}

func TestLoadRemoteDisabled(t *testing.T) {
	l := New(afero.NewMemMapFs(), strings.NewReader(""), nil, false)
	_, err := l.Load(context.Background(), "https://www.facebook.com/watch?v=1")
	assert.Error(t, err)
}
