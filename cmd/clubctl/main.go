package main

import (
	"github.com/Phronesis2025/wcs-basketball-go/internal/cli"
)

func main() {
	cli.Execute()
}
