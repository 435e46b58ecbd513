package tests

import (
	"os"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/trackx/apps/api/echo"
	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/plan"
	"github.com/trezcool/trackx/core/school"
	"github.com/trezcool/trackx/core/subscription"
	emailsvc "github.com/trezcool/trackx/services/email"
	inmemdb "github.com/trezcool/trackx/storage/database/inmem"
	testutil "github.com/trezcool/trackx/tests"
)

var (
	db      *inmemdb.DB
	app     *echoapi.Server
	conf    *core.Config
	logger  *testutil.LoggerMock
	mailSvc *emailsvc.ConsoleServiceMock

	schoolRepo school.Repository
	planRepo   plan.Repository
	subRepo    subscription.Repository
)

func TestMain(m *testing.M) {
	conf = core.NewTestConfig()
	logger = testutil.NewLoggerMock()

	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)

	// set up DB & repos
	db = inmemdb.Open()
	schoolRepo = inmemdb.NewSchoolRepository(db)
	planRepo = inmemdb.NewPlanRepository(db)
	subRepo = inmemdb.NewSubscriptionRepository(db)

	// set up services
	mailSvc = emailsvc.NewConsoleServiceMock(conf, logger)
	schoolSvc := school.NewService(schoolRepo)
	planSvc := plan.NewService(planRepo)
	subSvc := subscription.NewService(subRepo, planSvc, schoolSvc, mailSvc, logger, conf)

	// set up server
	app = echoapi.NewServer(echoapi.ServerDeps{
		Conf:            conf,
		Logger:          logger,
		SchoolSvc:       schoolSvc,
		PlanSvc:         planSvc,
		SubscriptionSvc: subSvc,
		Validate:        validate,
		Translator:      translator,
	})

	os.Exit(m.Run())
}

func resetDB() {
	db.Reset()
	mailSvc.SentMessages = nil
}
