package financesvc

import "time"

func SetNow(s Service, now func() time.Time) { s.(*service).now = now }
