package external

import "testing"

func TestParseResultURL(t *testing.T) {
	url, err := ParseResultURL(`{"resultUrls":["https://cdn.example.com/a.mp4","https://cdn.example.com/b.mp4"]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.example.com/a.mp4" {
		t.Errorf("got %q", url)
	}

	cases := map[string]string{
		"empty":         "",
		"not json":      "resultUrls=a.mp4",
		"no urls field": `{"other":1}`,
		"empty list":    `{"resultUrls":[]}`,
		"blank url":     `{"resultUrls":[""]}`,
	}
	for name, in := range cases {
		if _, err := ParseResultURL(in); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
