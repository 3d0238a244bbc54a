package scene

import "testing"

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"single-sphere", "Single Sphere"},
		{"moving_spheres", "Moving Spheres"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(SceneIDs()) {
		t.Fatalf("Expected %d scenes, got %d", len(SceneIDs()), len(scenes))
	}
	if scenes[0].ID != "default" {
		t.Errorf("Expected default scene first, got %q", scenes[0].ID)
	}
	for _, info := range scenes {
		if info.DisplayName == "" || info.Group == "" {
			t.Errorf("Scene %q missing metadata: %+v", info.ID, info)
		}
	}
}

func TestListAllScenes_Grouped(t *testing.T) {
	response := ListAllScenes()

	total := 0
	for i, group := range response.Groups {
		if i > 0 && response.Groups[i-1].Name >= group.Name {
			t.Errorf("Groups not sorted: %q before %q", response.Groups[i-1].Name, group.Name)
		}
		for _, info := range group.Scenes {
			if info.Group != group.Name {
				t.Errorf("Scene %q in group %q but tagged %q", info.ID, group.Name, info.Group)
			}
		}
		total += len(group.Scenes)
	}
	if total != len(SceneIDs()) {
		t.Errorf("Expected %d scenes across groups, got %d", len(SceneIDs()), total)
	}
}
