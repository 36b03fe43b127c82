package account

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"

	"dutyroster/bizerror"
	"dutyroster/common"
	"dutyroster/idgen"
	"dutyroster/persistence"
	"dutyroster/session"

	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	userIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	UpdateBasicAuthSecretFunc = UpdateBasicAuthSecret
)

func HashSha256(raw string) string {
	h := sha256.New()
	h.Write([]byte(raw))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

// Bootstrap ensures the admin user exists. Name and secret come from
// ADMIN_NAME/ADMIN_SECRET, defaulting to admin/admin123.
func Bootstrap() error {
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "admin"
	}
	secret := os.Getenv("ADMIN_SECRET")
	if secret == "" {
		secret = "admin123"
	}

	db := persistence.ActiveDataSourceManager.GormDB(context.Background())
	user := User{}
	err := db.Where(&User{Name: name}).First(&user).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	user = User{ID: idgen.NextID(userIdWorker), Name: name, Secret: HashSha256(secret)}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	common.Log.Info("admin user '" + name + "' created")
	return nil
}

func UpdateBasicAuthSecret(u *BasicAuthUpdating, s *session.Session) error {
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	user := User{}
	if err := db.Model(&User{}).Where(&User{ID: s.Identity.ID, Secret: HashSha256(u.OriginalSecret)}).
		Scan(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return bizerror.ErrUnauthenticated
		}
		return err
	}

	return db.Model(&User{}).Where(&User{ID: s.Identity.ID, Secret: HashSha256(u.OriginalSecret)}).
		Update(&User{Secret: HashSha256(u.NewSecret)}).Error
}
