package mem

import "fmt"

// Tag classifies an allocation for accounting. The set is closed; every
// allocation, release and resize carries exactly one Tag.
type Tag uint8

const (
	TagUnknown Tag = iota // legal, but logged as a warning
	TagArray
	TagVector
	TagMap
	TagCircularQueue
	TagBinarySearchTree
	TagString
	TagApplication
	TagJob
	TagTexture
	TagMaterial
	TagRenderer
	TagGame
	TagTransform
	TagEntity
	TagEntityNode
	TagScene

	// NumTags is the number of defined tags.
	NumTags = int(TagScene) + 1
)

var tagNames = [NumTags]string{
	TagUnknown:          "Unknown",
	TagArray:            "Array",
	TagVector:           "Vector",
	TagMap:              "Map",
	TagCircularQueue:    "CircularQueue",
	TagBinarySearchTree: "BinarySearchTree",
	TagString:           "String",
	TagApplication:      "Application",
	TagJob:              "Job",
	TagTexture:          "Texture",
	TagMaterial:         "Material",
	TagRenderer:         "Renderer",
	TagGame:             "Game",
	TagTransform:        "Transform",
	TagEntity:           "Entity",
	TagEntityNode:       "EntityNode",
	TagScene:            "Scene",
}

// String returns the tag name.
func (t Tag) String() string {
	if t.Valid() {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// Valid reports whether t is one of the defined tags.
func (t Tag) Valid() bool {
	return int(t) < NumTags
}

// Tags returns every tag in declaration order.
func Tags() []Tag {
	tags := make([]Tag, NumTags)
	for i := range tags {
		tags[i] = Tag(i)
	}
	return tags
}

// ParseTag resolves a tag by name.
func ParseTag(name string) (Tag, error) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), nil
		}
	}
	return TagUnknown, fmt.Errorf("unknown memory tag %q", name)
}
