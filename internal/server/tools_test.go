package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"encoding_info",
		"encoding_list",
		"raw_image_load",
		"raw_image_render",
		"raw_image_crop",
		"raw_image_sample",
		"raw_image_channel",
		"raw_image_histogram",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required field must be declared as a property
			required, _ := tool.InputSchema["required"].([]string)
			for _, field := range required {
				if _, ok := props[field]; !ok {
					t.Errorf("required field %s missing from properties", field)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredFields(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
	}{
		{"encoding_info", []string{"encoding"}},
		{"encoding_list", nil},
		{"raw_image_load", []string{"path"}},
		{"raw_image_render", []string{"path"}},
		{"raw_image_crop", []string{"path", "x1", "y1", "x2", "y2"}},
		{"raw_image_sample", []string{"path", "x", "y"}},
		{"raw_image_channel", []string{"path", "channel"}},
		{"raw_image_histogram", []string{"path"}},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool, ok := toolMap[tt.tool]
			if !ok {
				t.Fatalf("tool %s not defined", tt.tool)
			}
			got, _ := tool.InputSchema["required"].([]string)
			if len(got) != len(tt.required) {
				t.Fatalf("required: got %v, want %v", got, tt.required)
			}
			for i := range got {
				if got[i] != tt.required[i] {
					t.Errorf("required[%d]: got %s, want %s", i, got[i], tt.required[i])
				}
			}
		})
	}
}

func TestToolDefinitions_FamilyEnum(t *testing.T) {
	var list Tool
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "encoding_list" {
			list = tool
		}
	}

	props := list.InputSchema["properties"].(map[string]interface{})
	family := props["family"].(map[string]interface{})
	enum, ok := family["enum"].([]string)
	if !ok {
		t.Fatal("family should declare an enum")
	}

	want := map[string]bool{"color": true, "mono": true, "bayer": true, "yuv": true}
	if len(enum) != len(want) {
		t.Errorf("enum: got %v", enum)
	}
	for _, f := range enum {
		if !want[f] {
			t.Errorf("unexpected family %q", f)
		}
	}
}

func TestToolDefinitions_JSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("tool definitions should marshal: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	for _, tool := range decoded {
		if _, ok := tool["inputSchema"]; !ok {
			t.Errorf("tool %v missing inputSchema key", tool["name"])
		}
	}
}
