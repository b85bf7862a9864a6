package constants

// Library subdirectory names, relative to the configured library root.
const (
	MoviesDir   = "Movies"
	TVShowsDir  = "TV Shows"
	MusicDir    = "Music"
	SoftwareDir = "Software"
	BooksDir    = "Books"
	ExtrasDir   = "Extras"
	JunkDir     = "junk"
)

// Format subdirectories inside a book series folder.
const (
	EbooksSubdir     = "Ebooks"
	AudiobooksSubdir = "Audiobooks"
)

// Plausible release-year bounds for a bare 4-digit token.
const (
	MinReleaseYear = 1900
	MaxReleaseYear = 2049
)

// VideoExtensions are recognized video container extensions (with dot, lowercase).
var VideoExtensions = map[string]bool{
	".mkv": true, ".mp4": true, ".avi": true, ".mov": true, ".wmv": true,
	".flv": true, ".webm": true, ".m4v": true, ".mpg": true, ".mpeg": true,
	".ts": true,
}

// AudioExtensions are audio track extensions that may be music or audiobooks.
var AudioExtensions = map[string]bool{
	".mp3": true, ".flac": true, ".m4a": true, ".wav": true, ".aac": true,
	".ogg": true, ".opus": true, ".wma": true,
}

// AudiobookExtensions unambiguously identify audiobook containers.
var AudiobookExtensions = map[string]bool{
	".m4b": true, ".aax": true, ".aa": true,
}

// EbookExtensions unambiguously identify ebook formats.
var EbookExtensions = map[string]bool{
	".epub": true, ".mobi": true, ".pdf": true, ".azw": true, ".azw3": true,
	".djvu": true, ".fb2": true, ".cbz": true, ".cbr": true,
}

// SoftwareExtensions identify installers and software archives.
var SoftwareExtensions = map[string]bool{
	".exe": true, ".msi": true, ".dmg": true, ".pkg": true, ".deb": true,
	".rpm": true, ".appimage": true, ".iso": true, ".zip": true, ".7z": true,
	".rar": true,
}

// SubtitleExtensions identify external subtitle files.
var SubtitleExtensions = map[string]bool{
	".srt": true, ".sub": true, ".ssa": true, ".ass": true, ".vtt": true,
}
