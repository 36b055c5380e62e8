// Package storage хранит загруженные фото друзей на диске.
// Наружу отдаётся только относительный путь — непрозрачная ссылка, которую сохраняет Friend.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ProfilePicturesDir — подкаталог для фото внутри корня хранилища.
const ProfilePicturesDir = "profile-pictures"

var (
	ErrTooLarge        = errors.New("file is too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmpty           = errors.New("empty file")
	ErrNotOwned        = errors.New("file belongs to another user")
)

var allowedImages = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Local — файловое хранилище с корнем root.
type Local struct {
	root     string
	maxBytes int64
}

// NewLocal создаёт каталоги хранилища.
func NewLocal(root string, maxBytes int64) (*Local, error) {
	if err := os.MkdirAll(filepath.Join(root, ProfilePicturesDir), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{root: root, maxBytes: maxBytes}, nil
}

// Root — корневой каталог, отдаётся наружу по /storage/.
func (s *Local) Root() string {
	return s.root
}

// MaxBytes — предел размера одного файла.
func (s *Local) MaxBytes() int64 {
	return s.maxBytes
}

// ownerPrefix — каталог фото пользователя: "profile-pictures/<ownerID>/".
func ownerPrefix(ownerID int64) string {
	return ProfilePicturesDir + "/" + strconv.FormatInt(ownerID, 10) + "/"
}

// Owns сообщает, что rel — путь к фото, загруженному ownerID.
// Пути с "..", лишними слешами и вложенными каталогами не принимаются.
func (s *Local) Owns(ownerID int64, rel string) bool {
	prefix := ownerPrefix(ownerID)
	if ownerID <= 0 || !strings.HasPrefix(rel, prefix) || path.Clean(rel) != rel {
		return false
	}
	name := strings.TrimPrefix(rel, prefix)
	return name != "" && !strings.Contains(name, "/")
}

// SaveProfilePicture проверяет размер и тип содержимого и сохраняет файл под новым uuid
// в каталоге владельца. Возвращает путь относительно корня, например "profile-pictures/7/<uuid>.png".
func (s *Local) SaveProfilePicture(ownerID int64, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	mt := mimetype.Detect(data)
	ext, ok := allowedImages[mt.String()]
	if !ok {
		return "", ErrUnsupportedType
	}

	rel := ownerPrefix(ownerID) + uuid.NewString() + ext
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create owner dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return rel, nil
}

// Remove удаляет фото ownerID; чужие пути дают ErrNotOwned, отсутствие файла не ошибка.
func (s *Local) Remove(ownerID int64, rel string) error {
	if !s.Owns(ownerID, rel) {
		return ErrNotOwned
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
