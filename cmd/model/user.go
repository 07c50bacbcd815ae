package model

const UserTableName = "users"

type User struct {
	UserId       string `gorm:"column:user_id;type:char(24);primaryKey" json:"user_id"`
	UserName     string `gorm:"column:user_name;type:varchar(64);uniqueIndex:uk_user_name" json:"user_name"`
	Email        string `gorm:"column:email;type:varchar(128);uniqueIndex:uk_user_email" json:"email"`
	FullName     string `gorm:"column:full_name;type:varchar(128)" json:"full_name"`
	AvatarUrl    string `gorm:"column:avatar_url;type:varchar(512)" json:"avatar_url"`
	CoverUrl     string `gorm:"column:cover_url;type:varchar(512)" json:"cover_url"`
	Password     string `gorm:"column:password;type:varchar(128)" json:"-"`
	RefreshToken string `gorm:"column:refresh_token;type:varchar(512)" json:"-"`
	CreatedAt    string `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    string `gorm:"column:updated_at" json:"updated_at"`
}

func (u *User) TableName() string {
	return UserTableName
}
