package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("secret-token", "db-123")
	client.baseURL = server.URL
	return client
}

func TestClient_CreatePage(t *testing.T) {
	var gotPath, gotAuth, gotVersion string
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		json.NewDecoder(r.Body).Decode(&gotBody)

		json.NewEncoder(w).Encode(Page{Object: "page", ID: "page-1"})
	})

	properties := Properties{PropName: TitleProperty("Test entry")}
	children := []Block{NewParagraph("body text")}

	pageID, err := client.CreatePage(context.Background(), properties, children)
	if err != nil {
		t.Fatal(err)
	}

	if pageID != "page-1" {
		t.Errorf("Expected page ID 'page-1', got '%s'", pageID)
	}
	if gotPath != "/pages" {
		t.Errorf("Expected path '/pages', got '%s'", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Expected bearer token header, got '%s'", gotAuth)
	}
	if gotVersion != APIVersion {
		t.Errorf("Expected Notion-Version '%s', got '%s'", APIVersion, gotVersion)
	}

	parent, ok := gotBody["parent"].(map[string]any)
	if !ok || parent["database_id"] != "db-123" {
		t.Errorf("Expected parent database 'db-123', got %v", gotBody["parent"])
	}
	if _, ok := gotBody["children"]; !ok {
		t.Errorf("Expected children in create request")
	}
}

func TestClient_CreatePage_OmitsEmptyChildren(t *testing.T) {
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Page{Object: "page", ID: "page-1"})
	})

	if _, err := client.CreatePage(context.Background(), Properties{}, nil); err != nil {
		t.Fatal(err)
	}

	if _, ok := gotBody["children"]; ok {
		t.Errorf("Expected children omitted when nil, got %v", gotBody["children"])
	}
}

func TestClient_UpdatePage(t *testing.T) {
	var gotMethod, gotPath string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(Page{Object: "page", ID: "page-9"})
	})

	err := client.UpdatePage(context.Background(), "page-9", Properties{PropName: TitleProperty("Updated")})
	if err != nil {
		t.Fatal(err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("Expected PATCH, got %s", gotMethod)
	}
	if gotPath != "/pages/page-9" {
		t.Errorf("Expected path '/pages/page-9', got '%s'", gotPath)
	}
}

func TestClient_FindPageBySourceFile(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(QueryResponse{
			Object:  "list",
			Results: []Page{{Object: "page", ID: "page-7"}, {Object: "page", ID: "page-8"}},
		})
	})

	pageID, err := client.FindPageBySourceFile(context.Background(), "2026-08-30.md")
	if err != nil {
		t.Fatal(err)
	}

	if pageID != "page-7" {
		t.Errorf("Expected first match 'page-7', got '%s'", pageID)
	}
	if gotPath != "/databases/db-123/query" {
		t.Errorf("Expected query path, got '%s'", gotPath)
	}

	filter, ok := gotBody["filter"].(map[string]any)
	if !ok || filter["property"] != PropSourceFile {
		t.Errorf("Expected filter on '%s' property, got %v", PropSourceFile, gotBody["filter"])
	}
}

func TestClient_FindPageBySourceFile_NoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(QueryResponse{Object: "list"})
	})

	pageID, err := client.FindPageBySourceFile(context.Background(), "nothing.md")
	if err != nil {
		t.Fatal(err)
	}
	if pageID != "" {
		t.Errorf("Expected empty page ID when nothing matches, got '%s'", pageID)
	}
}

func TestClient_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Error{
			Object:  "error",
			Status:  400,
			Code:    "validation_error",
			Message: "Name is not a property that exists",
		})
	})

	_, err := client.CreatePage(context.Background(), Properties{}, nil)
	if err == nil {
		t.Fatal("Expected error for 400 response")
	}

	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if apiErr.Code != "validation_error" {
		t.Errorf("Expected code 'validation_error', got '%s'", apiErr.Code)
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Page{Object: "page", ID: "page-1"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.CreatePage(ctx, Properties{}, nil); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
