package mime

var Extension = map[string]MIME{
	".atom": Atom,
	".css":  CSS,
	".gif":  GIF,
	".htm":  HTML,
	".html": HTML,
	".jpeg": JPEG,
	".jpg":  JPEG,
	".js":   JAVASCRIPT,
	".json": JSON,
	".pdf":  PDF,
	".png":  PNG,
	".rss":  RSS,
	".svg":  SVG,
	".txt":  Plain,
	".webp": WEBP,
	".xml":  XML,
	".gz":   GZIP,
	".yaml": YAML,
	".zip":  ZIP,
	".ico":  ICO,
}

// DefaultCharset defines charsets, used by default for MIMEs unless explicitly set.
var DefaultCharset = map[MIME]Charset{
	CSS:        UTF8,
	HTML:       UTF8,
	JAVASCRIPT: UTF8,
	XML:        UTF8,
	Plain:      UTF8,
}
