package model

// UserStatus 用户状态
type UserStatus int

const (
	UserStatusDisabled UserStatus = 0
	UserStatusActive   UserStatus = 1
)

// SysUser 后台账号
type SysUser struct {
	BaseModel
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	Email    string `gorm:"size:100" json:"email"`

	// 系统角色: admin (管理员), editor (内容编辑)
	Role string `gorm:"size:20;default:'editor'" json:"role"`

	Status UserStatus `gorm:"default:1" json:"status"`
}

func (SysUser) TableName() string {
	return "sys_users"
}
