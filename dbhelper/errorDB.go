package dbhelper

import (
	"github.com/wishlistapp/apiv1/models"
	"github.com/wishlistapp/apiv1/utils"
	"log"
)

// LogUnexpectedError records a diagnostic row for a failure no handler
// expected. If the insert itself fails, both errors go to process output
// so nothing is silently lost.
func LogUnexpectedError(requestMethod, requestPath, errorMessage, stackTrace string) {
	entry := models.UnexpectedError{
		RequestMethod: requestMethod,
		RequestPath: requestPath,
		ErrorTimestamp: utils.NowMillis(),
		ErrorMessage: errorMessage,
		StackTrace: stackTrace,
	}
	result := DB.Create(&entry)
	if result.Error != nil {
		log.Println("failed to record unexpected error:", result.Error)
		log.Println("original error:", requestMethod, requestPath, errorMessage)
	}
}
