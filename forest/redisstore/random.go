package redisstore

import "math/rand"

// Code below is an adaptation of https://github.com/nishanths/go-xkcd/blob/b5a58daa228c66d55ead5da14125567329173ca6/random.go

func randString(n int) string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	str := make([]byte, n)
	for i := range str {
		str[i] = chars[rand.Intn(len(chars))]
	}
	return string(str)
}
