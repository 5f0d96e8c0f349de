package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// OCRResults is what the project API returns for a finished OCR run. Results
// are kept raw since their shape depends on the document type.
type OCRResults struct {
	Results  []json.RawMessage `json:"results"`
	FileURLs []string          `json:"file_urls"`
}

func (c *Client) DeleteProject(ctx context.Context, projectID string) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}

	if err := c.do(ctx, http.MethodDelete, "projects/"+url.PathEscape(projectID), nil, nil, "", &resp); err != nil {
		return "", err
	}

	return resp.Status, nil
}

// RunOCR starts OCR for a project. Backends that process synchronously return
// the results directly; otherwise Results is empty.
func (c *Client) RunOCR(ctx context.Context, userID, projectID string) (*OCRResults, error) {
	var resp OCRResults

	if err := c.postJSON(ctx, "projects/ocr", map[string]string{
		"user_id":    userID,
		"project_id": projectID,
	}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) GetOCRResults(ctx context.Context, projectID, userID string) (*OCRResults, error) {
	var resp OCRResults

	path := "projects/" + url.PathEscape(projectID) + "/ocr"
	if err := c.getJSON(ctx, path, url.Values{"user_id": {userID}}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
