package roster

import (
	"dutyroster/bizerror"
	"dutyroster/domain"
	"dutyroster/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

// checkGroupExists rejects references to groups that do not exist; a nil
// groupId means the ungrouped pool and is always valid.
func checkGroupExists(tx *gorm.DB, groupId *types.ID) error {
	if groupId == nil {
		return nil
	}
	g := domain.Group{}
	if err := tx.Where("id = ?", *groupId).First(&g).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &bizerror.ErrBadParam{Cause: gorm.ErrRecordNotFound}
		}
		return err
	}
	return nil
}

func sessionIdentity(s *session.Session) *session.Identity {
	if s == nil || s.Identity.ID == 0 {
		return nil
	}
	return &s.Identity
}

func idString(id *types.ID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
