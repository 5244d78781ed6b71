// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultKeyProperty is the property that stores the citation key when no
// override is configured. It is a heading-local identifier; switching to a
// document-global identifier property trades away global uniqueness.
const DefaultKeyProperty = "CUSTOM_ID"

// MapperConfig holds the options recognized by the entry formatter and
// heading mapper.
type MapperConfig struct {
	// AutoKey derives missing citation keys programmatically from the
	// entry's fields. When false the user is prompted for a key instead.
	AutoKey bool `json:"auto_key" yaml:"auto_key" mapstructure:"auto_key"`

	// PropertyPrefix is prepended to every stored property name except
	// KeyProperty (e.g. "BIB_"). Matching on read is anchored: only
	// properties that start with the prefix are treated as fields.
	PropertyPrefix string `json:"property_prefix" yaml:"property_prefix" mapstructure:"property_prefix"`

	// TitleAsHeadline lets the heading title satisfy the "title"
	// requirement, omitting it from required-field prompts.
	TitleAsHeadline bool `json:"title_as_headline" yaml:"title_as_headline" mapstructure:"title_as_headline"`

	// ExportArbitraryFields includes non-schema properties in formatted
	// output. Only meaningful with a non-empty PropertyPrefix.
	ExportArbitraryFields bool `json:"export_arbitrary_fields" yaml:"export_arbitrary_fields" mapstructure:"export_arbitrary_fields"`

	// KeyProperty names the property holding the citation key.
	// Empty means DefaultKeyProperty.
	KeyProperty string `json:"key_property" yaml:"key_property" mapstructure:"key_property"`

	// DefaultTags are applied to every written heading.
	DefaultTags []string `json:"default_tags" yaml:"default_tags" mapstructure:"default_tags"`

	// TagsAsKeywords enables bidirectional tag <-> keywords-field
	// conversion.
	TagsAsKeywords bool `json:"tags_as_keywords" yaml:"tags_as_keywords" mapstructure:"tags_as_keywords"`

	// NoExportTags are excluded from keywords-field conversion.
	NoExportTags []string `json:"no_export_tags" yaml:"no_export_tags" mapstructure:"no_export_tags"`

	// InheritTagsOnExport includes inherited tags, not just local ones,
	// in keywords conversion.
	InheritTagsOnExport bool `json:"inherit_tags_on_export" yaml:"inherit_tags_on_export" mapstructure:"inherit_tags_on_export"`
}

// KeyPropertyName returns the configured key property or the default.
func (c MapperConfig) KeyPropertyName() string {
	if c.KeyProperty == "" {
		return DefaultKeyProperty
	}
	return c.KeyProperty
}

// KeyIndexConfig holds settings for the citation key index.
type KeyIndexConfig struct {
	// Path is the SQLite database file (default "orgbib-keys.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all orgbib configuration read from orgbib.yaml.
type Config struct {
	Mapper   MapperConfig   `json:"mapper" yaml:"mapper" mapstructure:"mapper"`
	KeyIndex KeyIndexConfig `json:"key_index" yaml:"key_index" mapstructure:"key_index"`
}
