package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Identifier accepted by NewScene
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	Group       string `json:"group"` // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type sceneEntry struct {
	info  SceneInfo
	build func() *Scene
}

var builtInScenes = []sceneEntry{
	{
		info: SceneInfo{
			ID:          "default",
			Description: "Diffuse, hollow glass and metal spheres on a diffuse ground",
			Group:       "Materials",
		},
		build: func() *Scene { return NewDefaultScene() },
	},
	{
		info: SceneInfo{
			ID:          "single-sphere",
			Description: "One diffuse sphere under the sky gradient",
			Group:       "Basics",
		},
		build: func() *Scene { return NewSingleSphereScene() },
	},
	{
		info: SceneInfo{
			ID:          "moving-spheres",
			Description: "Random field of small spheres with motion blur",
			Group:       "Motion",
		},
		build: func() *Scene { return NewMovingSpheresScene(DefaultMovingSpheresSeed) },
	},
	{
		info: SceneInfo{
			ID:          "sphere-grid",
			Description: "Grid of OKLCH colored metal spheres with varying fuzz",
			Group:       "Materials",
		},
		build: func() *Scene { return NewSphereGridScene() },
	},
}

// NewScene builds the built-in scene with the given ID
func NewScene(id string) (*Scene, error) {
	for _, entry := range builtInScenes {
		if entry.info.ID == id {
			return entry.build(), nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(SceneIDs(), ", "))
}

// SceneIDs returns the IDs of all built-in scenes in registration order
func SceneIDs() []string {
	ids := make([]string, len(builtInScenes))
	for i, entry := range builtInScenes {
		ids[i] = entry.info.ID
	}
	return ids
}

// ListScenes returns metadata for all built-in scenes in registration order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	for i, entry := range builtInScenes {
		info := entry.info
		info.DisplayName = titleCase(info.ID)
		scenes[i] = info
	}
	return scenes
}

// ListAllScenes returns the built-in scenes grouped by category, groups sorted by name
func ListAllScenes() ScenesResponse {
	groupMap := make(map[string][]SceneInfo)
	for _, info := range ListScenes() {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	groupNames := make([]string, 0, len(groupMap))
	for name := range groupMap {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	var response ScenesResponse
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}
	return response
}

// titleCase converts an identifier to title case
// e.g., "single-sphere" -> "Single Sphere"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
