package mime

type Charset = string

const (
	UTF8   Charset = "utf-8"
	UTF16  Charset = "utf-16"
	ASCII  Charset = "us-ascii"
	Latin1 Charset = "iso-8859-1"
	CP1251 Charset = "windows-1251"
)
