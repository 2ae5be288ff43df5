package workspace

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/nixprof/lang"
	"github.com/ardnew/nixprof/log"
)

// Project layout.
const (
	Dir         = ".nixprof"
	ProfilesDir = "profiles"
	DefaultFile = "default.nix"
	PinsFile    = "pins.nix"
	FlakeFile   = "flake.nix"

	// DefaultShellAttr names the profile selected when none is given.
	DefaultShellAttr = "defaultShell"

	profileExt = ".nix"
)

const (
	defaultDirMode  fs.FileMode = 0o755
	defaultFileMode fs.FileMode = 0o644
)

// Workspace is a nixprof project rooted at a directory.
type Workspace struct {
	root string
}

// Open returns the project rooted at root. The directory must contain the
// [Dir] directory.
func Open(root string) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, ErrNoProject.With(slog.String("root", root)).Wrap(err)
	}

	info, err := os.Stat(filepath.Join(abs, Dir))
	if err != nil || !info.IsDir() {
		return nil, ErrNoProject.With(slog.String("root", abs)).Wrap(err)
	}

	return &Workspace{root: abs}, nil
}

// Root returns the absolute project directory.
func (w *Workspace) Root() string { return w.root }

// Path returns the path formed by joining the project's [Dir] with elem.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.root, Dir}, elem...)...)
}

// FlakePath returns the path of the project's flake.
func (w *Workspace) FlakePath() string { return filepath.Join(w.root, FlakeFile) }

// PinsPath returns the path of the pin table.
func (w *Workspace) PinsPath() string { return w.Path(PinsFile) }

// ProfilePath returns the path of the profile named name.
func (w *Workspace) ProfilePath(name string) string {
	return w.Path(ProfilesDir, name+profileExt)
}

// Profiles returns the names of all profiles, sorted.
func (w *Workspace) Profiles() ([]string, error) {
	entries, err := os.ReadDir(w.Path(ProfilesDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, ErrReadFile.With(slog.String("dir", w.Path(ProfilesDir))).Wrap(err)
	}

	var names []string

	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), profileExt)
		if !ok || e.IsDir() || e.Name() == DefaultFile || name == "" {
			continue
		}

		names = append(names, name)
	}

	slices.Sort(names)

	return names, nil
}

// DefaultProfile returns the profile named by the defaultShell attribute of
// [DefaultFile], or the first profile if there is no such attribute.
func (w *Workspace) DefaultProfile() (string, error) {
	text, err := w.Read(w.Path(DefaultFile))
	if err == nil {
		name, err := lang.StringAttr(text, DefaultShellAttr)
		if err == nil && name != "" {
			return name, nil
		}

		if err != nil && !errors.Is(err, lang.ErrSectionNotFound) {
			return "", err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	names, err := w.Profiles()
	if err != nil {
		return "", err
	}

	if len(names) == 0 {
		return "", ErrNoProfile.With(slog.String("root", w.root))
	}

	return names[0], nil
}

// SetDefaultProfile records name as the default profile. The profile must
// exist.
func (w *Workspace) SetDefaultProfile(ctx context.Context, name string) error {
	if _, err := w.Resolve(name); err != nil {
		return err
	}

	path := w.Path(DefaultFile)

	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return w.create(ctx, path, DefaultTemplate(name))
	}

	return w.Edit(ctx, path, func(text string) (string, error) {
		return lang.SetStringAttr(text, DefaultShellAttr, name)
	})
}

// Resolve returns the profile to operate on: explicit if it is not empty,
// otherwise the default profile. The profile must exist.
func (w *Workspace) Resolve(explicit string) (string, error) {
	name := explicit
	if name == "" {
		var err error
		if name, err = w.DefaultProfile(); err != nil {
			return "", err
		}
	}

	names, err := w.Profiles()
	if err != nil {
		return "", err
	}

	if !slices.Contains(names, name) {
		err := ErrProfileNotFound.
			With(slog.String("profile", name)).
			With(slog.String("dir", w.Path(ProfilesDir)))
		if similar := lang.Similar(name, names); len(similar) > 0 {
			err = err.With(slog.Any("similar", similar))
		}

		return "", err
	}

	return name, nil
}

// CreateProfile writes a new, empty profile named name.
func (w *Workspace) CreateProfile(ctx context.Context, name string) error {
	if !validProfileName(name) {
		return ErrInvalidProfile.With(slog.String("profile", name))
	}

	path := w.ProfilePath(name)
	if _, err := os.Stat(path); err == nil {
		return ErrProfileExists.With(slog.String("profile", name))
	}

	return w.create(ctx, path, ProfileTemplate)
}

// RemoveProfile deletes the profile named name. The default profile cannot
// be removed.
func (w *Workspace) RemoveProfile(ctx context.Context, name string) error {
	name, err := w.Resolve(name)
	if err != nil {
		return err
	}

	def, err := w.DefaultProfile()
	if err != nil {
		return err
	}

	if name == def {
		return ErrRemoveDefault.With(slog.String("profile", name))
	}

	path := w.ProfilePath(name)
	if err := os.Remove(path); err != nil {
		return ErrWriteFile.With(slog.String("file", path)).Wrap(err)
	}

	log.DebugContext(ctx, "removed file", slog.String("file", w.rel(path)))

	return nil
}

func validProfileName(name string) bool {
	return name != "" && name != strings.TrimSuffix(DefaultFile, profileExt) &&
		!strings.ContainsAny(name, `/\`) && !strings.HasPrefix(name, ".")
}

// Read returns the content of the file at path.
func (w *Workspace) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ErrReadFile.With(slog.String("file", path)).Wrap(err)
	}

	return string(data), nil
}

// Edit replaces the content of the file at path with the result of fn
// applied to its current content. The file is left untouched if fn fails
// or returns the content unchanged.
func (w *Workspace) Edit(
	ctx context.Context,
	path string,
	fn func(text string) (string, error),
) error {
	return w.EditAll(ctx, []string{path}, func(texts []string) ([]string, error) {
		out, err := fn(texts[0])
		if err != nil {
			return nil, err
		}

		return []string{out}, nil
	})
}

// EditAll is like [Workspace.Edit] for several files edited together. fn
// receives the content of each file in the order of paths and returns the
// new content in the same order. No file is written unless fn succeeds.
func (w *Workspace) EditAll(
	ctx context.Context,
	paths []string,
	fn func(texts []string) ([]string, error),
) error {
	texts := make([]string, len(paths))

	for i, path := range paths {
		text, err := w.Read(path)
		if err != nil {
			return err
		}

		texts[i] = text
	}

	out, err := fn(slices.Clone(texts))
	if err != nil {
		return err
	}

	for i, path := range paths {
		if out[i] == texts[i] {
			continue
		}

		if err := WriteFile(path, []byte(out[i]), defaultFileMode); err != nil {
			return err
		}

		log.DebugContext(ctx, "updated file",
			slog.String("file", w.rel(path)),
			slog.Int("size", len(out[i])),
		)
	}

	return nil
}

// create writes text to a new file at path, creating parent directories.
func (w *Workspace) create(ctx context.Context, path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), defaultDirMode); err != nil {
		return ErrWriteFile.With(slog.String("file", path)).Wrap(err)
	}

	if err := WriteFile(path, []byte(text), defaultFileMode); err != nil {
		return err
	}

	log.DebugContext(ctx, "created file", slog.String("file", w.rel(path)))

	return nil
}

// rel returns path relative to the project root when possible.
func (w *Workspace) rel(path string) string {
	if rel, err := filepath.Rel(w.root, path); err == nil {
		return rel
	}

	return path
}

// Init creates the project directory layout under root with a single
// profile named profile, which becomes the default. Existing files are
// kept unless force is set.
func Init(ctx context.Context, root, profile string, force bool) (*Workspace, error) {
	if !validProfileName(profile) {
		return nil, ErrInvalidProfile.With(slog.String("profile", profile))
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, ErrNoProject.With(slog.String("root", root)).Wrap(err)
	}

	w := &Workspace{root: abs}

	files := []struct{ path, text string }{
		{w.Path(DefaultFile), DefaultTemplate(profile)},
		{w.PinsPath(), PinsTemplate},
		{w.ProfilePath(profile), ProfileTemplate},
		{w.FlakePath(), FlakeTemplate},
	}

	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil && !force {
			log.DebugContext(ctx, "kept existing file", slog.String("file", w.rel(f.path)))

			continue
		}

		if err := w.create(ctx, f.path, f.text); err != nil {
			return nil, err
		}
	}

	return w, nil
}
