package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"logo_match",
		"logo_cutoffs",
		"logo_embed",
		"bank_build",
		"bank_info",
		"match_read_text",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Expected %d tools, got %d", len(expectedTools), len(tools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Error("Tool InputSchema is nil")
			}

			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"]
			if !ok {
				t.Error("InputSchema missing 'properties' field")
			}
			if props == nil {
				t.Error("InputSchema properties is nil")
			}
		})
	}
}

func TestToolDefinitions_RequiredFields(t *testing.T) {
	required := map[string][]string{
		"logo_match":      {"image_path", "logo_paths"},
		"logo_cutoffs":    {"logo_paths"},
		"logo_embed":      {"image_paths"},
		"bank_build":      {"out_path"},
		"match_read_text": {"image_path"},
	}

	tools := GetToolDefinitions()
	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for name, wantRequired := range required {
		tool, ok := toolMap[name]
		if !ok {
			t.Errorf("tool %s not found", name)
			continue
		}

		t.Run(name, func(t *testing.T) {
			requiredList, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			have := make(map[string]bool)
			for _, r := range requiredList {
				have[r] = true
			}
			for _, want := range wantRequired {
				if !have[want] {
					t.Errorf("tool should require %q", want)
				}
			}
		})
	}
}

func TestToolDefinitions_BoxProperties(t *testing.T) {
	schema := boxSchema()

	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("box schema should have properties")
	}
	for _, coord := range []string{"x1", "y1", "x2", "y2", "label", "confidence"} {
		if _, ok := props[coord]; !ok {
			t.Errorf("box schema missing %q", coord)
		}
	}

	required, ok := schema["required"].([]string)
	if !ok {
		t.Fatal("box schema should have required coordinates")
	}
	if len(required) != 4 {
		t.Errorf("box schema requires %d fields, want the 4 coordinates", len(required))
	}
}
