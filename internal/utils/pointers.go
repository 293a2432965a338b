package utils

func Int64Ptr(i int64) *int64 {
	return &i
}
