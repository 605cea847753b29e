package biz

type ctxKey string

// USER_KEY carries the authenticated user id through request contexts.
const USER_KEY ctxKey = "user_id"

// GuestUserId marks an unauthenticated chat session.
const GuestUserId int64 = 0
