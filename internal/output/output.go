/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package output provides shared output utilities for ponte CLI commands.
package output

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/viper"

	"bennypowers.dev/ponte/fs"
)

// JSON marshals a result and writes it to stdout or a file.
// If viper's "output" flag is set, writes to that file; otherwise prints to stdout.
func JSON(osfs fs.FileSystem, result any) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if outputPath := viper.GetString("output"); outputPath != "" {
		return osfs.WriteFile(outputPath, append(data, '\n'), 0644)
	}
	fmt.Println(string(data))
	return nil
}
