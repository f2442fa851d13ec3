package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModern(t *testing.T) {
	tests := []struct {
		name      string
		groups    string
		wantIDs   []string
		wantSD    string
		wantHD    string
		wantAudio string
	}{
		{
			name: "sd lowest and hd highest bandwidth",
			groups: `[{"representations":[
				{"mime_type":"video/mp4","bandwidth":300,"base_url":"https://h/300"},
				{"mime_type":"video/mp4","bandwidth":100,"base_url":"https://h/100"},
				{"mime_type":"video/mp4","bandwidth":200,"base_url":"https://h/200"},
				{"mime_type":"audio/mp4","bandwidth":64,"base_url":"https://h/audio"}
			]}]`,
			wantIDs:   []string{"video_0"},
			wantSD:    "https://h/100",
			wantHD:    "https://h/300",
			wantAudio: "https://h/audio",
		},
		{
			name:    "single video stream is both sd and hd",
			groups:  `[{"representations":[{"mime_type":"video/mp4","bandwidth":100,"base_url":"https://h/only"}]}]`,
			wantIDs: []string{"video_0"},
			wantSD:  "https://h/only",
			wantHD:  "https://h/only",
		},
		{
			name: "equal bandwidth keeps document order",
			groups: `[{"representations":[
				{"mime_type":"video/mp4","bandwidth":100,"base_url":"https://h/first"},
				{"mime_type":"video/mp4","bandwidth":100,"base_url":"https://h/second"}
			]}]`,
			wantIDs: []string{"video_0"},
			wantSD:  "https://h/first",
			wantHD:  "https://h/second",
		},
		{
			name: "first audio stream wins",
			groups: `[{"representations":[
				{"mime_type":"audio/mp4","bandwidth":1,"base_url":"https://h/a1"},
				{"mime_type":"video/mp4","bandwidth":1,"base_url":"https://h/v"},
				{"mime_type":"audio/mp4","bandwidth":9,"base_url":"https://h/a2"}
			]}]`,
			wantIDs:   []string{"video_0"},
			wantSD:    "https://h/v",
			wantHD:    "https://h/v",
			wantAudio: "https://h/a1",
		},
		{
			name: "audio only group skipped but index kept",
			groups: `[
				{"representations":[{"mime_type":"audio/mp4","bandwidth":1,"base_url":"https://h/a"}]},
				{"representations":[{"mime_type":"video/mp4","bandwidth":1,"base_url":"https://h/v"}]}
			]`,
			wantIDs: []string{"video_1"},
			wantSD:  "https://h/v",
			wantHD:  "https://h/v",
		},
		{
			name: "malformed group skipped",
			groups: `[
				{"representations":"oops"},
				{"representations":[{"mime_type":"video/mp4","bandwidth":1,"base_url":"https://h/v"}]}
			]`,
			wantIDs: []string{"video_1"},
			wantSD:  "https://h/v",
			wantHD:  "https://h/v",
		},
		{
			name: "string bandwidth compared numerically",
			groups: `[{"representations":[
				{"mime_type":"video/mp4","bandwidth":"100","base_url":"https://h/x"},
				{"mime_type":"video/mp4","bandwidth":500,"base_url":"https://h/y"}
			]}]`,
			wantIDs: []string{"video_0"},
			wantSD:  "https://h/x",
			wantHD:  "https://h/y",
		},
		{
			name: "wrong typed sibling dropped alone",
			groups: `[{"representations":[
				{"mime_type":7,"bandwidth":900,"base_url":"https://h/bad-mime"},
				{"mime_type":"video/mp4","bandwidth":800,"base_url":{"u":"https://h/bad-url"}},
				"junk",
				{"mime_type":"video/mp4","bandwidth":200,"base_url":"https://h/hi"},
				{"mime_type":"video/mp4","bandwidth":[1],"base_url":"https://h/odd-bandwidth"}
			]}]`,
			wantIDs: []string{"video_0"},
			wantSD:  "https://h/odd-bandwidth",
			wantHD:  "https://h/hi",
		},
		{
			name: "unknown mime types ignored",
			groups: `[{"representations":[
				{"mime_type":"video/webm","bandwidth":999,"base_url":"https://h/webm"},
				{"mime_type":"video/mp4","bandwidth":1,"base_url":"https://h/mp4"}
			]}]`,
			wantIDs: []string{"video_0"},
			wantSD:  "https://h/mp4",
			wantHD:  "https://h/mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos, err := New().Modern(representationsPage(tt.groups))
			require.NoError(t, err)

			ids := make([]string, len(videos))
			for i, v := range videos {
				ids[i] = v.VideoID
			}
			require.Equal(t, tt.wantIDs, ids)

			v := videos[0]
			require.Len(t, v.Resolutions, 2)
			sd, hd := v.Resolutions[0], v.Resolutions[1]
			assert.Equal(t, tt.wantSD, sd.URL)
			assert.Equal(t, tt.wantHD, hd.URL)
			assert.Equal(t, tt.wantAudio, v.AudioURL)

			assert.Equal(t, v.VideoID, v.Key)
			assert.Equal(t, v.VideoID+"_sd", sd.Key)
			assert.Equal(t, v.VideoID+"_hd", hd.Key)
			assert.Equal(t, "sd", sd.QualityClass)
			assert.Equal(t, "SD", sd.QualityLabel)
			assert.Equal(t, "hd", hd.QualityClass)
			assert.Equal(t, "HD", hd.QualityLabel)
		})
	}
}

func TestBandwidth(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"number", `{"bandwidth":1500}`, 1500},
		{"fraction", `{"bandwidth":12.5}`, 12.5},
		{"numeric string", `{"bandwidth":"300"}`, 300},
		{"padded string", `{"bandwidth":" 42 "}`, 42},
		{"non numeric string", `{"bandwidth":"fast"}`, 0},
		{"array", `{"bandwidth":[1]}`, 0},
		{"missing", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bandwidth([]byte(tt.raw)))
		})
	}
}

func TestModernMultipleVideos(t *testing.T) {
	groups := `[
		{"representations":[{"mime_type":"video/mp4","bandwidth":1,"base_url":"https://h/0"}]},
		{"representations":[{"mime_type":"video/mp4","bandwidth":1,"base_url":"https://h/1"}]},
		{"representations":[{"mime_type":"video/mp4","bandwidth":1,"base_url":"https://h/2"}]}
	]`

	videos, err := New().Modern(representationsPage(groups))
	require.NoError(t, err)
	require.Len(t, videos, 3)
	for i, v := range videos {
		assert.Equal(t, "https://h/"+string(rune('0'+i)), v.Resolutions[0].URL)
	}
	assert.Equal(t, "video_2", videos[2].VideoID)
}

func TestModernRewritesURLs(t *testing.T) {
	groups := `[{"representations":[
		{"mime_type":"video/mp4","bandwidth":1,"base_url":"https://video-fra5-1.xx.fbcdn.net/o1/v/sd.mp4?efg=abc"},
		{"mime_type":"audio/mp4","bandwidth":1,"base_url":"https://video-fra5-2.xx.fbcdn.net/o1/v/a.mp4"}
	]}]`

	videos, err := New().Modern(representationsPage(groups))
	require.NoError(t, err)
	assert.Equal(t, "https://video.xx.fbcdn.net/o1/v/sd.mp4?efg=abc", videos[0].Resolutions[0].URL)
	assert.Equal(t, "https://video.xx.fbcdn.net/o1/v/a.mp4", videos[0].AudioURL)
}

func TestModernThumbnailByIndex(t *testing.T) {
	groups := `[
		{"representations":[{"mime_type":"video/mp4","bandwidth":1,"base_url":"https://h/0"}],"video_thumbnail":{"uri":"https://t/0.jpg"}},
		{"representations":[{"mime_type":"video/mp4","bandwidth":1,"base_url":"https://h/1"}],"video_thumbnail":{"uri":"https://t/1.jpg"}}
	]`

	videos, err := New().Modern(representationsPage(groups))
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "https://t/0.jpg", videos[0].Thumbnail)
	assert.Equal(t, "https://t/1.jpg", videos[1].Thumbnail)
}

func TestModernFailures(t *testing.T) {
	tests := []struct {
		name string
		page string
		want error
	}{
		{"no json", "<html></html>", ErrNoEmbeddedJSON},
		{"empty list", representationsPage(`[]`), ErrNoEmbeddedJSON},
		{"no video streams", representationsPage(`[{"representations":[]}]`), ErrNoVideoStreams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos, err := New().Modern(tt.page)
			assert.Nil(t, videos)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var extErr *ExtractionError
			require.True(t, errors.As(err, &extErr))
			assert.Equal(t, "modern", extErr.Stage)
		})
	}
}
