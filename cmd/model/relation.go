package model

const SubscriptionTableName = "subscriptions"

// Subscription is the subscriber -> channel edge. Uniqueness is enforced
// by the index, same as likes.
type Subscription struct {
	SubscriptionId string `gorm:"column:subscription_id;type:char(24);primaryKey" json:"subscription_id"`
	SubscriberId   string `gorm:"column:subscriber_id;type:char(24);uniqueIndex:uk_sub_edge" json:"subscriber_id"`
	ChannelId      string `gorm:"column:channel_id;type:char(24);uniqueIndex:uk_sub_edge;index:idx_sub_channel" json:"channel_id"`
	CreatedAt      string `gorm:"column:created_at" json:"created_at"`
}

func (s *Subscription) TableName() string {
	return SubscriptionTableName
}
