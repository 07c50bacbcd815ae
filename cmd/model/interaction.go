package model

const (
	CommentTableName = "comments"
	LikeTableName    = "likes"
)

type Comment struct {
	CommentId string `gorm:"column:comment_id;type:char(24);primaryKey" json:"comment_id"`
	VideoId   string `gorm:"column:video_id;type:char(24);index:idx_comment_video" json:"video_id"`
	UserId    string `gorm:"column:user_id;type:char(24)" json:"user_id"`
	Content   string `gorm:"column:content;type:varchar(512)" json:"content"`
	CreatedAt string `gorm:"column:created_at" json:"created_at"`
	UpdatedAt string `gorm:"column:updated_at" json:"updated_at"`
}

func (c *Comment) TableName() string {
	return CommentTableName
}

// TargetKind discriminates what a like points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
)

// LikeTarget is a tagged reference to either a video or a comment, so a
// like can never carry both target fields at once.
type LikeTarget struct {
	Kind TargetKind
	Id   string
}

func VideoTarget(videoId string) LikeTarget {
	return LikeTarget{Kind: TargetVideo, Id: videoId}
}

func CommentTarget(commentId string) LikeTarget {
	return LikeTarget{Kind: TargetComment, Id: commentId}
}

// Like is the (user, target) edge. The unique index is the source of truth
// for the at-most-one-like invariant; concurrent togglers race on it and
// the loser gets a duplicated-key error.
type Like struct {
	LikeId     string     `gorm:"column:like_id;type:char(24);primaryKey" json:"like_id"`
	UserId     string     `gorm:"column:user_id;type:char(24);uniqueIndex:uk_like_user_target" json:"user_id"`
	TargetKind TargetKind `gorm:"column:target_kind;type:varchar(16);uniqueIndex:uk_like_user_target" json:"target_kind"`
	TargetId   string     `gorm:"column:target_id;type:char(24);uniqueIndex:uk_like_user_target" json:"target_id"`
	CreatedAt  string     `gorm:"column:created_at" json:"created_at"`
}

func (l *Like) TableName() string {
	return LikeTableName
}
