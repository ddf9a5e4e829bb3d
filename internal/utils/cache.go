package utils

import (
	"github.com/patrickmn/go-cache"
	"time"
)

// MembershipCache holds positive room-membership checks keyed by
// "membership:<userID>:<roomID>". Entries are short-lived so revoked
// members fall off quickly; mutating paths invalidate eagerly.
var MembershipCache = cache.New(time.Minute*5, time.Second*30)

// AuthCache holds validated JWT claims keyed by token string.
var AuthCache = cache.New(time.Minute*5, time.Second)
