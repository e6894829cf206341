package constants

const (
	CHANNEL_SIZE               = 100 // 通道大小
	MESSAGE_PAGE_SIZE          = 10  // 消息分页默认条数
	MESSAGE_PAGE_MAX           = 100 // 消息分页最大条数
	REDIS_TIMEOUT              = 1   // redis timeout (分钟)
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天

	// MESSAGE_TIME_LAYOUT 消息时间的展示格式
	// 保留微秒，同一会话内时间戳严格递增，秒级精度不够区分
	MESSAGE_TIME_LAYOUT = "2006-01-02 15:04:05.000000"
)
