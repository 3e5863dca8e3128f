// Package survey defines the field descriptors that make up a survey document
// and the public contracts for loading them. A Survey is the ordered list of
// Field values found under the top-level "Survey" key of a JSON or YAML
// document; order is significant because answer records and validation issues
// follow it. Loader implementations live under internal/survey/loader and are
// constructed through the top-level surveyform package.
package survey
