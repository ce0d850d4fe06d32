package cms

import (
	"net/url"
	"strings"
)

// MediaKind is the closed set of renderable media variants.
type MediaKind string

const (
	MediaKindImage       MediaKind = "image"
	MediaKindVideo       MediaKind = "video"
	MediaKindRemoteVideo MediaKind = "remote_video"
	MediaKindFile        MediaKind = "file"
	MediaKindAudio       MediaKind = "audio"
	MediaKindUnknown     MediaKind = "unknown"
)

// ImageData is the renderable shape of an image.
type ImageData struct {
	Src    string `json:"src"              yaml:"src"`
	Alt    string `json:"alt,omitempty"    yaml:"alt,omitempty"`
	Title  string `json:"title,omitempty"  yaml:"title,omitempty"`
	Width  int    `json:"width,omitempty"  yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
}

// MediaDescriptor is the normalized, renderable representation of a CMS media
// entity. URL, when present, is always an absolute http(s) or data URL.
// Source points back at the raw resource for callers that need fields this
// normalization does not carry; it is read-only.
type MediaDescriptor struct {
	Kind     MediaKind  `json:"kind"                yaml:"kind"`
	Name     string     `json:"name"                yaml:"name"`
	URL      string     `json:"url,omitempty"       yaml:"url,omitempty"`
	MimeType string     `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	EmbedURL string     `json:"embed_url,omitempty" yaml:"embed_url,omitempty"`
	Image    *ImageData `json:"image,omitempty"     yaml:"image,omitempty"`
	Source   *Resource  `json:"-"                   yaml:"-"`
}

// FindIncluded looks a resource up in the included set by its composite
// (type, id) key. Linear scan, first match wins; duplicate keys are not
// validated here.
func FindIncluded(included []Resource, resourceType, id string) *Resource {
	for i := range included {
		if included[i].Type == resourceType && included[i].ID == id {
			return &included[i]
		}
	}

	return nil
}

// ResolveRelationship resolves a single-valued relationship against the
// included set. Returns nil for absent, null, or array-valued relationships,
// and for references whose target is not side-loaded.
func ResolveRelationship(included []Resource, rel *Relationship) *Resource {
	if rel == nil || rel.Data.IsMany || rel.Data.One == nil {
		return nil
	}

	return FindIncluded(included, rel.Data.One.Type, rel.Data.One.ID)
}

// ResolveRelationshipMany resolves a relationship to its ordered list of
// included resources. A single reference is treated as a one-element list.
// References that do not resolve are dropped, never null-padded; the order
// of resolved results follows the relationship's declared order.
func ResolveRelationshipMany(included []Resource, rel *Relationship) []Resource {
	if rel == nil {
		return nil
	}

	refs := rel.Data.Many

	if !rel.Data.IsMany {
		if rel.Data.One == nil {
			return nil
		}

		refs = []ResourceRef{*rel.Data.One}
	}

	resolved := make([]Resource, 0, len(refs))

	for _, ref := range refs {
		if res := FindIncluded(included, ref.Type, ref.ID); res != nil {
			resolved = append(resolved, *res)
		}
	}

	return resolved
}

// Media file relationship fields per bundle.
const (
	fieldMediaImage     = "field_media_image"
	fieldMediaVideoFile = "field_media_video_file"
	fieldMediaFile      = "field_media_file"
	fieldMediaDocument  = "field_media_document"
	fieldMediaAudioFile = "field_media_audio_file"
	fieldOEmbedVideo    = "field_media_oembed_video"
)

// primaryImageFields is the conventional field name order tried by
// ExtractPrimaryImage.
var primaryImageFields = []string{
	"field_image",
	"field_media_image",
	"field_media",
	"field_thumbnail",
	"field_hero_image",
}

// MediaNormalizer classifies media resources into renderable descriptors.
// It resolves file URLs against the configured base origin and never performs
// I/O; the included set it reads belongs to the caller and is not retained.
type MediaNormalizer struct {
	baseURL string
}

// NewMediaNormalizer creates a normalizer resolving file URLs against
// baseURL.
func NewMediaNormalizer(baseURL string) *MediaNormalizer {
	return &MediaNormalizer{baseURL: baseURL}
}

// ClassifyMedia normalizes one media resource into a descriptor. The bundle
// name (the media-- type suffix) selects the variant; unsupported bundles
// yield a descriptor of kind unknown rather than nil, so callers can detect
// "media exists but unsupported". Only a nil resource yields nil.
//
// Unresolved file relationships leave URL empty; partial data is expected
// when callers under-fetch the included set and is never an error.
func (n *MediaNormalizer) ClassifyMedia(media *Resource, included []Resource) *MediaDescriptor {
	if media == nil {
		return nil
	}

	desc := &MediaDescriptor{
		Kind:   MediaKindUnknown,
		Name:   media.Attributes.String("name"),
		Source: media,
	}

	switch strings.TrimPrefix(media.Type, "media--") {
	case "image":
		desc.Kind = MediaKindImage
		n.classifyImage(desc, media, included)
	case "video":
		desc.Kind = MediaKindVideo
		n.attachFile(desc, ResolveRelationship(included, media.Relationship(fieldMediaVideoFile)), "video/mp4")
	case "remote_video":
		desc.Kind = MediaKindRemoteVideo
		desc.URL = media.Attributes.String(fieldOEmbedVideo)
		desc.EmbedURL = providerEmbedURL(desc.URL)
	case "file", "document":
		desc.Kind = MediaKindFile

		file := ResolveRelationship(included, media.Relationship(fieldMediaFile))
		if file == nil {
			file = ResolveRelationship(included, media.Relationship(fieldMediaDocument))
		}

		n.attachFile(desc, file, "")
	case "audio":
		desc.Kind = MediaKindAudio
		n.attachFile(desc, ResolveRelationship(included, media.Relationship(fieldMediaAudioFile)), "audio/mpeg")
	default:
		// Unsupported bundle: kind stays unknown, no url or extras.
	}

	return desc
}

// classifyImage fills in the image variant: file URL plus alt/title/size
// metadata, preferring the relationship-level meta and falling back to the
// file's own attributes. The final alt falls back to the media name.
func (n *MediaNormalizer) classifyImage(desc *MediaDescriptor, media *Resource, included []Resource) {
	rel := media.Relationship(fieldMediaImage)

	file := ResolveRelationship(included, rel)
	if file == nil {
		return
	}

	src := ResolveFileURL(fileRawURL(file), n.baseURL)

	meta := relationshipMeta(rel)

	alt := meta.String("alt")
	if alt == "" {
		alt = file.Attributes.String("alt")
	}

	if alt == "" {
		alt = desc.Name
	}

	title := meta.String("title")
	if title == "" {
		title = file.Attributes.String("title")
	}

	width := meta.Int("width")
	if width == 0 {
		width = file.Attributes.Int("width")
	}

	height := meta.Int("height")
	if height == 0 {
		height = file.Attributes.Int("height")
	}

	desc.URL = src
	desc.Image = &ImageData{
		Src:    src,
		Alt:    alt,
		Title:  title,
		Width:  width,
		Height: height,
	}
}

// attachFile fills URL and mime type from a resolved file resource. A nil
// file leaves the descriptor partial.
func (n *MediaNormalizer) attachFile(desc *MediaDescriptor, file *Resource, defaultMime string) {
	if file == nil {
		return
	}

	desc.URL = ResolveFileURL(fileRawURL(file), n.baseURL)

	mime := file.Attributes.String("filemime")
	if mime == "" {
		mime = defaultMime
	}

	desc.MimeType = mime
}

// ExtractMediaField resolves the named relationship of an entity to its media
// resources and classifies each, in declared order.
func (n *MediaNormalizer) ExtractMediaField(entity *Resource, fieldName string, included []Resource) []MediaDescriptor {
	if entity == nil {
		return nil
	}

	resources := ResolveRelationshipMany(included, entity.Relationship(fieldName))

	descriptors := make([]MediaDescriptor, 0, len(resources))

	for i := range resources {
		if desc := n.ClassifyMedia(&resources[i], included); desc != nil {
			descriptors = append(descriptors, *desc)
		}
	}

	return descriptors
}

// ExtractPrimaryImage returns the first image carried by one of the
// conventional image field names, or nil when the entity has none.
// Short-circuits on the first media item of kind image with image data.
func (n *MediaNormalizer) ExtractPrimaryImage(entity *Resource, included []Resource) *ImageData {
	for _, field := range primaryImageFields {
		for _, desc := range n.ExtractMediaField(entity, field, included) {
			if desc.Kind == MediaKindImage && desc.Image != nil {
				img := *desc.Image

				return &img
			}
		}
	}

	return nil
}

// fileRawURL extracts the served URL from a file resource's uri attribute.
func fileRawURL(file *Resource) string {
	if uri := file.Attributes.Map("uri"); uri != nil {
		if u := uri.String("url"); u != "" {
			return u
		}
	}

	return file.Attributes.String("url")
}

// relationshipMeta returns the inline meta of a single-valued relationship
// reference, or nil. AttrMap getters are nil-safe.
func relationshipMeta(rel *Relationship) AttrMap {
	if rel == nil || rel.Data.One == nil {
		return nil
	}

	return rel.Data.One.Meta
}

// providerEmbedURL derives a playable embed URL from a known provider's
// oEmbed URL. Unrecognized providers yield "" and the raw URL is still
// surfaced to the caller.
func providerEmbedURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")

	switch host {
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		if strings.HasPrefix(parsed.Path, "/watch") {
			return youtubeEmbed(parsed.Query().Get("v"))
		}

		if rest, ok := strings.CutPrefix(parsed.Path, "/embed/"); ok {
			return youtubeEmbed(firstSegment(rest))
		}

		return ""
	case "youtu.be":
		return youtubeEmbed(firstSegment(strings.TrimPrefix(parsed.Path, "/")))
	case "vimeo.com", "player.vimeo.com":
		for _, segment := range strings.Split(parsed.Path, "/") {
			if segment != "" && isDigits(segment) {
				return "https://player.vimeo.com/video/" + segment
			}
		}

		return ""
	default:
		return ""
	}
}

func youtubeEmbed(id string) string {
	if id == "" {
		return ""
	}

	return "https://www.youtube.com/embed/" + id
}

func firstSegment(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}

	return path
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
