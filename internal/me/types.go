package me

import "pack/internal/model"

// UserInfoResponse documents GET /api/user.
type UserInfoResponse = model.Identity
