package wikipedia

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type apiResponse interface {
	apiError() *apiError
}

// apiError is the error object MediaWiki embeds in otherwise successful
// responses, e.g. for malformed parameters.
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *apiError) Error() string {
	if e.Info == "" {
		return "api error " + e.Code
	}
	return fmt.Sprintf("api error %s: %s", e.Code, e.Info)
}

type envelope struct {
	Error *apiError `json:"error"`
}

func (e envelope) apiError() *apiError { return e.Error }

type searchResponse struct {
	envelope
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type pagesResponse struct {
	envelope
	Query struct {
		Pages orderedValues `json:"pages"`
	} `json:"query"`
}

// firstPage decodes the first page in document order. Pages that are not
// JSON objects are reported as absent.
func (r *pagesResponse) firstPage() (page, bool) {
	if len(r.Query.Pages) == 0 {
		return page{}, false
	}
	var p page
	if err := json.Unmarshal(r.Query.Pages[0], &p); err != nil {
		return page{}, false
	}
	return p, true
}

type page struct {
	Title     string     `json:"title"`
	Extract   string     `json:"extract"`
	Revisions []revision `json:"revisions"`
}

type revision struct {
	Slots orderedValues `json:"slots"`
}

type slot struct {
	Star    string `json:"*"`
	Content string `json:"content"`
}

func (s slot) text() string {
	if s.Star != "" {
		return s.Star
	}
	return s.Content
}

// orderedValues holds the member values of a JSON object in document order.
// MediaWiki keys pages by page id and slots by role name, and the first member
// is the one that matters, which a Go map cannot tell. Arrays are accepted as
// well so formatversion=2 responses decode the same way.
type orderedValues []json.RawMessage

func (o *orderedValues) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return fmt.Errorf("expected object or array, got %v", tok)
	}

	values := orderedValues{}
	for dec.More() {
		if delim == '{' {
			if _, err := dec.Token(); err != nil {
				return err
			}
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		values = append(values, raw)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = values
	return nil
}
