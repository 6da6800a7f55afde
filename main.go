/*
Copyright © 2025 Contentkit Authors
*/
package main

import "github.com/contentkit/manifestgen/cmd"

func main() {
	cmd.Execute()
}
