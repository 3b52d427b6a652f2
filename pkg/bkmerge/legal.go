package bkmerge

// LegalNotice provides license notices for bkmerge itself and any
// third-party dependencies linked into its binaries.
const LegalNotice = `bkmerge

Licensed under the terms of the MIT License. A copy of this license can be
found online at https://opensource.org/licenses/MIT.


================================================================================
bkmerge depends on the following third-party software:
================================================================================

spf13/cobra, spf13/pflag
    https://github.com/spf13/cobra
    https://github.com/spf13/pflag
    Licensed under the Apache License, Version 2.0.

fatih/color, mattn/go-isatty, mattn/go-colorable
    https://github.com/fatih/color
    https://github.com/mattn/go-isatty
    https://github.com/mattn/go-colorable
    Licensed under the MIT License.

dustin/go-humanize
    https://github.com/dustin/go-humanize
    Licensed under the MIT License.

pkg/errors
    https://github.com/pkg/errors
    Licensed under the 2-Clause BSD License.

gopkg.in/yaml.v2
    https://github.com/go-yaml/yaml
    Licensed under the Apache License, Version 2.0, and the MIT License.

BurntSushi/toml
    https://github.com/BurntSushi/toml
    Licensed under the MIT License.

golang.org/x/sync
    https://golang.org/x/sync
    Licensed under the 3-Clause BSD License.

google/uuid
    https://github.com/google/uuid
    Licensed under the 3-Clause BSD License.

eknkc/basex
    https://github.com/eknkc/basex
    Licensed under the MIT License.
`
