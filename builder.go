package bundle

// Builder assembles an Entry. The zero value is ready to use.
//
// Path and content supplier are required. ShouldCompress defaults to true.
type Builder struct {
	path           Path
	shouldCompress *bool
	content        ContentSupplier
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetPath sets the entry path.
func (b *Builder) SetPath(p Path) *Builder {
	b.path = p
	return b
}

// SetContentSupplier sets the function producing the entry's bytes.
// It must return a fresh stream on every call.
func (b *Builder) SetContentSupplier(s ContentSupplier) *Builder {
	b.content = s
	return b
}

// SetShouldCompress sets the compression hint.
func (b *Builder) SetShouldCompress(v bool) *Builder {
	b.shouldCompress = &v
	return b
}

// Build validates the builder and returns a new Entry.
//
// If required fields are missing, Build returns a *MissingFieldError listing
// them and leaves the builder unchanged. The returned Entry is a snapshot:
// later setter calls do not affect it.
func (b *Builder) Build() (*Entry, error) {
	var missing []string
	if b.path == "" {
		missing = append(missing, "path")
	}
	if b.content == nil {
		missing = append(missing, "content supplier")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldError{Fields: missing}
	}

	shouldCompress := true
	if b.shouldCompress != nil {
		shouldCompress = *b.shouldCompress
	}
	return &Entry{
		path:           b.path,
		shouldCompress: shouldCompress,
		content:        b.content,
	}, nil
}
