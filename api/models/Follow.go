package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Follow struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique;index:idx_follows_follower_created,priority:1" json:"follower_id"`
	FollowedID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique;index:idx_follows_followed_created,priority:1;check:follows_no_self_follow,follower_id <> followed_id" json:"followed_id"`
	Follower   User      `gorm:"foreignKey:FollowerID" json:"follower"`
	Followed   User      `gorm:"foreignKey:FollowedID" json:"followed"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_follows_followed_created,priority:2;index:idx_follows_follower_created,priority:2" json:"created_at"`
}

// FollowUser makes follower follow the account named username and returns
// that account.
func FollowUser(db *gorm.DB, follower *User, username string) (*User, error) {
	name := strings.ToLower(strings.TrimSpace(username))
	if name == follower.Username {
		return nil, ErrSelfFollow
	}

	target, err := (&User{}).FindUserByUsername(db, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	if target.ID == follower.ID {
		return nil, ErrSelfFollow
	}

	following, err := IsFollowing(db, follower.ID, target.ID)
	if err != nil {
		return nil, err
	}
	if following {
		return target, ErrAlreadyFollowing
	}

	follow := Follow{FollowerID: follower.ID, FollowedID: target.ID}
	result := db.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return target, ErrAlreadyFollowing
	}
	return target, nil
}

func IsFollowing(db *gorm.DB, followerID, followedID uint) (bool, error) {
	var count int64
	err := db.Model(&Follow{}).Where("follower_id = ? AND followed_id = ?", followerID, followedID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func Unfollow(db *gorm.DB, followerID, followedID uint) error {
	result := db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).Delete(&Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindFollowing lists the edges where uid is the follower, with the followed
// account loaded.
func FindFollowing(db *gorm.DB, uid uint) ([]Follow, error) {
	var follows []Follow
	err := db.Preload("Followed").Where("follower_id = ?", uid).Order("created_at desc, id desc").Find(&follows).Error
	if err != nil {
		return nil, err
	}
	return follows, nil
}

func FindFollowers(db *gorm.DB, uid uint) ([]Follow, error) {
	var follows []Follow
	err := db.Preload("Follower").Where("followed_id = ?", uid).Order("created_at desc, id desc").Find(&follows).Error
	if err != nil {
		return nil, err
	}
	return follows, nil
}
