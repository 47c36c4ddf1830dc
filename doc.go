/*
Package launchcfg prepares the resources a launcher ships with.

It substitutes @token@ placeholders in a small set of template files
(installer manifests, desktop entries, the launcher properties file) with
values such as the version and artifact name, and writes the results under a
build output directory.

A Store holds the tokens, Render applies them to a Template, and a Resolver
ties the two together for the known templates of a project directory:

	r := launchcfg.NewResolver(launchcfg.ResolverInput{
		BaseDir: ".",
		Options: map[string]string{"version": "3.0.1"},
	})
	results, err := r.Run()

Rendering is all or nothing. A template referencing unknown tokens fails
with an *UnresolvedPlaceholderError naming every missing token, and Run
writes nothing unless every template rendered.
*/
package launchcfg
