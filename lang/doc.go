// Package lang reads and edits named sections of Nix development profiles
// without disturbing the rest of the file.
//
// Only a handful of section shapes are understood; everything else in a file
// is opaque text that is preserved byte for byte:
//
//	packages = [ git pkgs.ripgrep ];            # or: packages = with pkgs; [ ... ];
//	envVars = { EDITOR = "vim"; };
//	shellHook = '' ... '';                       # holds named command blocks
//	sources = { pkgs-abc1234 = "github:NixOS/nixpkgs/abc1234"; };
//	pinnedPackages = { pkgs-abc1234 = [ { pkg = "git"; name = "git@2.40"; } ]; };
//	inputs = { nixpkgs.url = "github:NixOS/nixpkgs"; };
//
// # Parsing
//
// Each ParseX function locates its section by attribute name (ignoring
// matches inside strings and comments), finds the end of the section with
// [MatchDelimiter], and parses the entries of the body. Every entry records
// the exact byte [Span] it occupies: its whole line, terminator included,
// when it has a line of its own, or just its token when package entries
// share a line.
//
// # Editing
//
// Mutators such as [PackageList.Add] or [EnvVarMap.Remove] never modify the
// parsed value; they return the complete new file text. Single entries are
// spliced in or out of the original text. The two sections of a [PinTable]
// are re-rendered as a unit so that pins and sources never disagree.
//
// No function in this package performs I/O or keeps state between calls.
//
// # Errors
//
// Errors are derived from [ErrSectionNotFound], [ErrMalformed],
// [ErrDuplicate], [ErrNotFound], [ErrConflict] and [ErrFilter], and carry
// slog attributes (section, name, line, column, similar names) for logging.
// A failed operation never returns partial text.
package lang
