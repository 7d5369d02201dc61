// Package pipeline drives one railsci build.
//
// Steps run sequentially in a fixed order with the workspace as working
// directory:
//
//	clean      remove .rvmrc
//	bundle     bundle install
//	configure  generate config/database.yml, copy config/*.yml.example
//	migrate    RAILS_ENV=test bundle exec rake db:migrate        (run specs)
//	specs      RAILS_ENV=test bundle exec rspec ...              (run specs)
//	cache      link tmp/ to the persistent asset cache           (compile assets)
//	assets     RAILS_ENV=ci bundle exec rake assets:precompile   (compile assets)
//	archive    package the war and publish it to the artifact store
//
// The first failing step stops the build. Its error is returned wrapped in a
// *StepError; exit codes of failed commands stay reachable through
// errors.ExitCodeOf.
package pipeline
