package main

import "github.com/nicolaskremer1/immortalis-blueprint/cmd/immortalis"

func main() {
	immortalis.Execute()
}
