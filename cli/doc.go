// Package cli parses the command line of aws-encryption-sdk-cli.
//
// Arguments are turned into a validated [Config] in three stages:
//
//  1. Argument files. Every "@path" token is replaced by the shell-split
//     tokens of that file, recursively ([ExpandArgFiles]).
//  2. Grammar. A kong grammar matches the tokens. Options that may be given
//     only once are rejected on their second occurrence, whether it came
//     from the command line or from an argument file.
//  3. Post-processing. The key=value blocks of --master-key,
//     --encryption-context and --caching are decoded and validated
//     ([ProcessMasterKeyProviderConfigs], [ParseAndCollapse],
//     [ProcessCachingConfig]).
//
// [ParseArgs] reports failures the way kong reports its own: a message on
// stderr and a non-zero exit status. [Parser.Parse] only returns them.
//
// # Usage
//
//	aws-encryption-sdk-cli -e -i plain.txt -o - \
//	    -m key=arn:aws:kms:us-west-2:111122223333:key/example \
//	    -c team=storage stage=prod --caching capacity=10 max_age=60
//
// Defaults for any flag may be set in a YAML file read from
// [pkg.ConfigPath]("config.yaml").
package cli
