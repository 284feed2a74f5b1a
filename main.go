// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/urlnorm/urlnorm/cmd/urlnorm"

func main() {
	cmd.Execute()
}
